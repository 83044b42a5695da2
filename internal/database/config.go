package database

import (
	"fmt"
	"time"
)

// Store drivers.
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds database connection configuration.
type Config struct {
	// Driver specifies which store to use: "none", "sqlite", "postgres" or "redis"
	Driver string `yaml:"driver" env:"DRIVER"`

	// SQLite configuration
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`

	// PostgreSQL configuration
	Postgres PostgresConfig `yaml:"postgres" envPrefix:"POSTGRES_"`

	// Redis configuration
	Redis RedisConfig `yaml:"redis" envPrefix:"REDIS_"`
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	// DSN overrides the individual connection fields when set
	DSN      string `yaml:"dsn" env:"DSN"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Database string `yaml:"database" env:"DATABASE"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`

	// Connection pool settings
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// RedisConfig holds Redis-specific configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	// TTL expires saved rooms; zero keeps them forever
	TTL time.Duration `yaml:"ttl" env:"TTL"`
}

// DefaultConfig returns a Config that persists nothing.
func DefaultConfig() Config {
	return Config{
		Driver:   DriverNone,
		Postgres: DefaultPostgresConfig(),
	}
}

// DefaultSQLiteConfig returns a Config for a SQLite file.
func DefaultSQLiteConfig(sqlitePath string) Config {
	cfg := DefaultConfig()
	cfg.Driver = DriverSQLite
	cfg.SQLitePath = sqlitePath
	return cfg
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// ConnectionString returns the lib/pq connection string.
func (c PostgresConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Validate checks that the selected driver has what it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case "", DriverNone:
		return nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite store requires sqlite_path")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" && (c.Postgres.Host == "" || c.Postgres.Database == "") {
			return fmt.Errorf("postgres store requires a dsn or host and database")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis store requires addr")
		}
		if c.Redis.TTL < 0 {
			return fmt.Errorf("redis ttl cannot be negative")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Driver)
	}
	return nil
}
