package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify/confirm"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify/events"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/db"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/redis"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/trace"
	carrierClient "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/carrier"
	migrate "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/migrate"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/web"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "apiserver",
		Long:         "Start the T-Link HTTP API server",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         newRouter,
		PostRunE:     cleanWebResource,
	}
}

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         "Run database migrations",
		SilenceUsage: true,
		PreRunE:      initMigrate,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate.Table(cmd.Root().Context())
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			db.ClosePostgres(cmd.Context())
			return nil
		},
	}
}

func initMigrate(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	db.InitPostgres(cmd.Context(), &db.Config{
		Host: conf.Database.Host, Port: conf.Database.Port,
		User: conf.Database.User, PW: conf.Database.Password,
		DBName: conf.Database.Name, LogConf: db.LogConf{Level: conf.Log.LogLevel},
	})
	return nil
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:   fmt.Sprintf("%s-%s", conf.Server.Platform, conf.Server.Service),
		Version:       conf.Trace.Version,
		TraceEndpoint: conf.Trace.TraceEndpoint,
	})
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

func newRouter(cmd *cobra.Command, _ []string) error {
	router := gin.Default()
	msgCenter := events.NewEvents()
	if err := confirm.Register(cmd.Context(), msgCenter); err != nil {
		return err
	}
	web.NewRouter(router, carrierClient.New(), msgCenter)

	conf := config.Global()
	port := conf.Server.Port
	addr := ":" + strconv.Itoa(port)

	httpServer := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API Server starting on http://0.0.0.0:%d\n", port)

	utils.SafelyGo(func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf(cmd.Context(), "start server err: %v\n", err)
		}
	}, func(err error) {
		logger.Fatalf(cmd.Context(), "run http server err: %+v", err)
	})

	<-cmd.Context().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("shut down server err: %+v", err)
	}
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	events.NewEvents().Close(cmd.Context())
	redis.CloseRedis(cmd.Context())
	db.ClosePostgres(cmd.Context())
	trace.CloseTrace(cmd.Context())
	return nil
}
