package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	Scheduling SchedulingConfig
	Redis      RedisConfig
	Google     GoogleConfig
	Scheduler  ExternalSchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	// Instants are stored in UTC; salon-local conversion happens in the application.
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"America/Sao_Paulo"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type SchedulingConfig struct {
	SlotGranularity        time.Duration `envconfig:"SLOT_GRANULARITY" default:"15m"`
	DefaultTimezone        string        `envconfig:"DEFAULT_TIMEZONE" default:"America/Sao_Paulo"`
	DefaultServiceDuration time.Duration `envconfig:"DEFAULT_SERVICE_DURATION" default:"30m"`
	// Upper bound for a single free/busy lookup during availability resolution
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"5s"`
	// Upper bound for a single provider write during out-of-band sync
	SyncTimeout   time.Duration `envconfig:"SYNC_TIMEOUT" default:"15s"`
	UpcomingLimit int           `envconfig:"UPCOMING_LIMIT" default:"20"`
}

type RedisConfig struct {
	// Empty address disables the busy-period cache
	Addr         string        `envconfig:"REDIS_ADDR" default:""`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	BusyCacheTTL time.Duration `envconfig:"BUSY_CACHE_TTL" default:"60s"`
}

type GoogleConfig struct {
	Enabled      bool   `envconfig:"GOOGLE_CALENDAR_ENABLED" default:"false"`
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" default:""`
}

type ExternalSchedulerConfig struct {
	Enabled bool          `envconfig:"EXTERNAL_SCHEDULER_ENABLED" default:"false"`
	BaseURL string        `envconfig:"EXTERNAL_SCHEDULER_BASE_URL" default:"https://api.trinks.com/v1"`
	Timeout time.Duration `envconfig:"EXTERNAL_SCHEDULER_TIMEOUT" default:"20s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadDBConfig reads only the DB section, for tools that never start the server.
func LoadDBConfig() (DBConfig, error) {
	var cfg DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DBConfig{}, fmt.Errorf("failed to process db env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "America/Sao_Paulo",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Scheduling: SchedulingConfig{
			SlotGranularity:        15 * time.Minute,
			DefaultTimezone:        "America/Sao_Paulo",
			DefaultServiceDuration: 30 * time.Minute,
			ProviderTimeout:        time.Second,
			SyncTimeout:            time.Second,
			UpcomingLimit:          20,
		},
		Redis: RedisConfig{
			BusyCacheTTL: time.Minute,
		},
	}
}
