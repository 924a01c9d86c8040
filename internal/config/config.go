package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

// ServerConfig holds the WebSocket listener settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Path            string        `mapstructure:"path"`
	ReadLimit       int64         `mapstructure:"read_limit"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	SendBufferSize  int           `mapstructure:"send_buffer_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL
// disables result persistence entirely.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the engine tunables. Defaults match the classic rule set.
type GameConfig struct {
	StartingHealth int `mapstructure:"starting_health"`
	StartingHand   int `mapstructure:"starting_hand"`
	MaxHandSize    int `mapstructure:"max_hand_size"`
	MaxFieldSize   int `mapstructure:"max_field_size"`
	MaxMana        int `mapstructure:"max_mana"`
	LogSize        int `mapstructure:"log_size"`
}

// CatalogConfig points at the card catalog file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from the given file. Environment variables
// prefixed with DUEL_ override file values (DUEL_SERVER_ADDRESS etc).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.path", "/ws")
	v.SetDefault("server.read_limit", 64*1024)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.pong_timeout", 60*time.Second)
	v.SetDefault("server.ping_interval", 30*time.Second)
	v.SetDefault("server.send_buffer_size", 64)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.max_conn_lifetime", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.starting_health", 30)
	v.SetDefault("game.starting_hand", 5)
	v.SetDefault("game.max_hand_size", 10)
	v.SetDefault("game.max_field_size", 7)
	v.SetDefault("game.max_mana", 10)
	v.SetDefault("game.log_size", 20)

	v.SetDefault("catalog.path", "config/cards.yaml")

	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Game.MaxHandSize < c.Game.StartingHand {
		return fmt.Errorf("game.max_hand_size (%d) must be >= game.starting_hand (%d)",
			c.Game.MaxHandSize, c.Game.StartingHand)
	}
	if c.Game.MaxFieldSize < 1 {
		return fmt.Errorf("game.max_field_size must be >= 1")
	}
	return nil
}
