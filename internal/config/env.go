package config

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"tlink"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"tlink"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"tlink"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Auth struct {
	JWTSecret string `mapstructure:"AUTH_JWT_SECRET" default:"tlink-dev-secret"`
	Issuer    string `mapstructure:"AUTH_JWT_ISSUER" default:"tlink"`
}

// Carrier 外部承运商服务（地址校验 / 运费 / 面单 / 轨迹）。
type Carrier struct {
	Addr           string `mapstructure:"CARRIER_ADDR" default:"http://127.0.0.1:8090"`
	APIKey         string `mapstructure:"CARRIER_APIKEY"`
	TimeoutSeconds int    `mapstructure:"CARRIER_TIMEOUT_SECONDS" default:"15"`
	DefaultService string `mapstructure:"CARRIER_DEFAULT_SERVICE" default:"ground"`
	ShipFrom       string `mapstructure:"CARRIER_SHIP_FROM" default:"T-Link Reference Lab, 400 Summit Dr, Burlington, NC 27215, US"`
}

type Notify struct {
	Channel string `mapstructure:"NOTIFY_CHANNEL" default:"tlink-shipment-events"`
}

// Tracker 后台轨迹轮询 worker。
type Tracker struct {
	IntervalSeconds int `mapstructure:"TRACKER_INTERVAL_SECONDS" default:"300"`
	BatchSize       int `mapstructure:"TRACKER_BATCH_SIZE" default:"50"`
	PoolSize        int `mapstructure:"TRACKER_POOL_SIZE" default:"20"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version       string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
}
