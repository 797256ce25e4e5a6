package web

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/web/views/health"
	sampleView "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/web/views/sample"
	shipmentView "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/web/views/shipment"
	supplyView "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/web/views/supply"
)

func NewRouter(g *gin.Engine, carrier repo.Carrier, msgCenter notify.MsgCenter) {
	installMiddleware(g)
	installURL(g, carrier, msgCenter)
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(cors.Default())
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

func installURL(g *gin.Engine, carrier repo.Carrier, msgCenter notify.MsgCenter) {
	api := g.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/health/live", health.Live)
	api.GET("/health/ready", health.Ready)
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	shipHandle := shipmentView.NewShipmentHandle(carrier, msgCenter)
	sampleHandle := sampleView.NewSampleHandle()
	supplyHandle := supplyView.NewSupplyHandle(msgCenter)

	v1 := api.Group("/v1", auth.AuthWeb())

	// Sample ledger
	{
		sampleRouter := v1.Group("/sample")
		sampleRouter.POST("", sampleHandle.Register)
		sampleRouter.GET("", sampleHandle.Query)
		sampleRouter.GET("/:uuid", sampleHandle.Get)
		sampleRouter.POST("/:uuid/consume", sampleHandle.Consume)
		sampleRouter.GET("/:uuid/custody", sampleHandle.Custody)
	}

	// Shipment lifecycle
	{
		shipmentRouter := v1.Group("/shipment")
		shipmentRouter.POST("", shipHandle.Create)
		shipmentRouter.GET("", shipHandle.List)
		shipmentRouter.GET("/:uuid", shipHandle.Get)
		shipmentRouter.POST("/:uuid/process", shipHandle.StartProcessing)
		shipmentRouter.POST("/:uuid/ship", shipHandle.Ship)
		shipmentRouter.POST("/:uuid/track", shipHandle.Track)
		shipmentRouter.POST("/:uuid/labels/printed", shipHandle.PrintLabels)
		shipmentRouter.GET("/:uuid/custody", shipHandle.Custody)
	}

	// Shipping supplies
	{
		supplyRouter := v1.Group("/supply")
		supplyRouter.POST("", supplyHandle.Create)
		supplyRouter.GET("", supplyHandle.Query)
		supplyRouter.POST("/:uuid/restock", supplyHandle.Restock)
		supplyRouter.GET("/:uuid/transactions", supplyHandle.Transactions)
	}
}
