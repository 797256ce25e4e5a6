package tracker

import (
	"github.com/spf13/cobra"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify/events"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/tracker"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/db"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/redis"
	carrierClient "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/carrier"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:          "tracker",
		Long:         "Start the tracking poll worker (carrier polling + Redis lock)",
		SilenceUsage: true,
		PreRunE:      initTracker,
		RunE:         runTracker,
		PostRunE:     cleanTracker,
	}
}

func initTracker(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	db.InitPostgres(cmd.Context(), &db.Config{
		Host: conf.Database.Host, Port: conf.Database.Port,
		User: conf.Database.User, PW: conf.Database.Password,
		DBName: conf.Database.Name, LogConf: db.LogConf{Level: conf.Log.LogLevel},
	})
	redis.InitRedis(cmd.Context(), &redis.Redis{
		Host: conf.Redis.Host, Port: conf.Redis.Port,
		Password: conf.Redis.Password, DB: conf.Redis.DB,
	})
	return nil
}

func runTracker(cmd *cobra.Command, _ []string) error {
	t, err := tracker.New(carrierClient.New(), events.NewEvents())
	if err != nil {
		return err
	}
	t.Run(cmd.Root().Context())
	return nil
}

func cleanTracker(cmd *cobra.Command, _ []string) error {
	events.NewEvents().Close(cmd.Context())
	redis.CloseRedis(cmd.Context())
	db.ClosePostgres(cmd.Context())
	return nil
}
