package config

import (
	"github.com/cricstack/tournament-service/internal/logger"
)

// PostgresConfig tunes the pgx pool. Durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	MigrationsPath    string `mapstructure:"migrations_path"`
}

// RedisConfig points at the pub/sub broker for realtime fan-out.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig maps static bearer tokens to the two mutating roles.
type AuthConfig struct {
	AdminToken   string `mapstructure:"admin_token"`
	CaptainToken string `mapstructure:"captain_token"`
}

// AuctionConfig carries tournament-level auction knobs.
type AuctionConfig struct {
	DefaultPurse     int `mapstructure:"default_purse"`
	DefaultBasePrice int `mapstructure:"default_base_price"`
	MaxSquadSize     int `mapstructure:"max_squad_size"`
}

type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Server   ServerConfig        `mapstructure:"server"`
	Auth     AuthConfig          `mapstructure:"auth"`
	Auction  AuctionConfig       `mapstructure:"auction"`
}

// SetDefaults fills the knobs most deployments never touch.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Postgres.MaxConns == 0 {
		c.Postgres.MaxConns = 10
	}
	if c.Postgres.MinConns == 0 {
		c.Postgres.MinConns = 2
	}
	if c.Postgres.MigrationsPath == "" {
		c.Postgres.MigrationsPath = "migrations"
	}
	if c.Auction.DefaultPurse == 0 {
		c.Auction.DefaultPurse = 10000
	}
	if c.Auction.DefaultBasePrice == 0 {
		c.Auction.DefaultBasePrice = 100
	}
	if c.Auction.MaxSquadSize == 0 {
		c.Auction.MaxSquadSize = 15
	}
}
