package db

import (
	// 外部依赖
	"context"
	"fmt"
	"time"

	postgres "gorm.io/driver/postgres"
	gorm "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	otelgorm "gorm.io/plugin/opentelemetry/tracing"

	// 内部引用
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

type txKey struct{}

// Datastore 对 *gorm.DB 的生命周期封装。
// 事务通过 context 透传：ExecTx 内派生的 ctx 携带 tx，
// 所有 repo 统一用 DBWithContext 取连接，天然参与外层事务。
type Datastore struct {
	db *gorm.DB
}

var datastore *Datastore

func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)

	level := gormlogger.Warn
	if conf.LogConf.Level == "debug" {
		level = gormlogger.Info
	}

	g, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		logger.Fatalf(ctx, "init postgres fail err: %+v", err)
		return
	}

	if err := g.Use(otelgorm.NewPlugin()); err != nil {
		logger.Warnf(ctx, "register gorm otel plugin err: %+v", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		logger.Fatalf(ctx, "get postgres pool fail err: %+v", err)
		return
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	datastore = &Datastore{db: g}
}

func ClosePostgres(ctx context.Context) {
	if datastore == nil {
		return
	}
	sqlDB, err := datastore.db.DB()
	if err != nil {
		logger.Errorf(ctx, "close postgres fail err: %+v", err)
		return
	}
	_ = sqlDB.Close()
	datastore = nil
}

func DB() *Datastore {
	return datastore
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext 若 ctx 内存在事务则返回事务连接。
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// ExecTx 在单个数据库事务内执行 fn，fn 返回错误即整体回滚。
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.DBWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
