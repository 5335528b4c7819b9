package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverMySQL  = "mysql"
	StoreDriverMemory = "memory"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Log         LogConfig
	Reservation ReservationConfig
	Store       StoreConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const (
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
)

type LogConfig struct {
	Level    string
	Encoding string
}

type ReservationConfig struct {
	Capacity int
}

type StoreConfig struct {
	Driver           string
	TxTimeout        time.Duration
	MaxRetryAttempts int
}

// Load reads configuration from the environment. When CONFIG_FILE is set,
// keys from that file (same names as the env vars) are read first and
// environment variables still take precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "seatkeeper")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "seatkeeper")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", LogEncodingJSON)
	v.SetDefault("RESERVATION_CAPACITY", 100)
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("STORE_TX_TIMEOUT", "5s")
	v.SetDefault("STORE_MAX_RETRY_ATTEMPTS", 3)

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	d, err := parseDurations(v,
		"DB_CONN_MAX_LIFETIME",
		"STORE_TX_TIMEOUT",
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT",
		"SERVER_SHUTDOWN_TIMEOUT",
	)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     d["SERVER_READ_TIMEOUT"],
			WriteTimeout:    d["SERVER_WRITE_TIMEOUT"],
			IdleTimeout:     d["SERVER_IDLE_TIMEOUT"],
			ShutdownTimeout: d["SERVER_SHUTDOWN_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: d["DB_CONN_MAX_LIFETIME"],
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: strings.ToLower(v.GetString("LOG_ENCODING")),
		},
		Reservation: ReservationConfig{
			Capacity: v.GetInt("RESERVATION_CAPACITY"),
		},
		Store: StoreConfig{
			Driver:           strings.ToLower(v.GetString("STORE_DRIVER")),
			TxTimeout:        d["STORE_TX_TIMEOUT"],
			MaxRetryAttempts: v.GetInt("STORE_MAX_RETRY_ATTEMPTS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseDurations reads each key as a Go duration string ("5s", "2m").
func parseDurations(v *viper.Viper, keys ...string) (map[string]time.Duration, error) {
	out := make(map[string]time.Duration, len(keys))
	for _, key := range keys {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		out[key] = d
	}
	return out, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Log.Encoding {
	case LogEncodingJSON, LogEncodingConsole:
	default:
		return fmt.Errorf("unknown LOG_ENCODING %q", c.Log.Encoding)
	}
	if c.Reservation.Capacity < 0 {
		return fmt.Errorf("RESERVATION_CAPACITY must be non-negative, got %d", c.Reservation.Capacity)
	}
	switch c.Store.Driver {
	case StoreDriverMySQL, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.MaxRetryAttempts < 1 {
		return fmt.Errorf("STORE_MAX_RETRY_ATTEMPTS must be at least 1, got %d", c.Store.MaxRetryAttempts)
	}
	return nil
}
