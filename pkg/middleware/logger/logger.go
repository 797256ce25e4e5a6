package logger

import (
	// 外部依赖
	"context"
	"os"

	otelzap "github.com/uptrace/opentelemetry-go-extra/otelzap"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path     string
	LogLevel string
	ServiceEnv
}

var global *otelzap.Logger

func Init(conf *LogConfig) {
	level := zapcore.InfoLevel
	if err := level.Set(conf.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level),
	)

	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(
		zap.String("platform", conf.Platform),
		zap.String("service", conf.Service),
		zap.String("env", conf.Env),
	)

	global = otelzap.New(base, otelzap.WithMinLevel(level))
}

func Close() {
	if global != nil {
		_ = global.Sync()
	}
}

func logger() *otelzap.Logger {
	if global == nil {
		// 未初始化时兜底到 stderr，避免空指针
		global = otelzap.New(zap.NewExample())
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...any) {
	logger().Sugar().Ctx(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	logger().Sugar().Ctx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	logger().Sugar().Ctx(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	logger().Sugar().Ctx(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	logger().Sugar().Ctx(ctx).Fatalf(format, args...)
}
