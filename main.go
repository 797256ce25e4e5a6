package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/cmd/api"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/cmd/tracker"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

//	@title			T-Link API
//	@version		1.0
//	@description	Chemical reference sample chain-of-custody and shipment service
//	@BasePath		/api

func main() {
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		SilenceUsage:       true,
		Short:              "tlink",
		Long:               "T-Link - chemical reference sample custody and shipment infrastructure",
		PersistentPreRunE:  initGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: cleanGlobalResource,
	}
	root.SetContext(rootCtx)
	root.AddCommand(api.NewWeb())
	root.AddCommand(api.NewMigrate())
	root.AddCommand(tracker.New())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		log.Fatal(err)
	}

	logger.Init(&logger.LogConfig{
		Path:     conf.Log.LogPath,
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})

	return nil
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
