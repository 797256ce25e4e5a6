package trace

import (
	// 外部依赖
	"context"
	"time"

	otel "go.opentelemetry.io/otel"
	otlptracegrpc "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	// 内部引用
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

type InitConfig struct {
	ServiceName   string
	Version       string
	TraceEndpoint string
}

var provider *sdktrace.TracerProvider

// InitTrace 未配置 endpoint 时不注册导出器，链路默认丢弃。
func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(conf.ServiceName),
		semconv.ServiceVersion(conf.Version),
	))
	if err != nil {
		logger.Warnf(ctx, "build trace resource err: %+v", err)
		return
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if conf.TraceEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithTimeout(5*time.Second),
		)
		if err != nil {
			logger.Warnf(ctx, "init otlp trace exporter err: %+v", err)
		} else {
			opts = append(opts, sdktrace.WithBatcher(exporter))
		}
	}

	provider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
}

func CloseTrace(ctx context.Context) {
	if provider == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown trace provider err: %+v", err)
	}
}
