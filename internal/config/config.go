package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Auth
		Database
		Log
		Global
	}

	HTTP struct {
		Port int32
		Host string
		HSTS bool // Send Strict-Transport-Security on HTTPS requests
	}
	Auth struct {
		APIKey string // Shared secret expected in the api-key header
	}
	Database struct {
		Path               string
		EnforceForeignKeys bool // SQLite leaves foreign keys unenforced unless asked
		MigrateOnStart     bool
		SeedOnStart        bool
	}
	Log struct {
		Level  string // logrus level name
		Format string // "text" or "json"
		File   string // Optional file written in addition to stdout
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// NewConfig reads configuration from the environment, falling back to
// DefaultEnvFile when it exists.
func NewConfig() (*Config, error) {
	return NewConfigFromFile(DefaultEnvFile)
}

// NewConfigFromFile reads configuration from the environment and the given
// dotenv file. A missing file is not an error.
func NewConfigFromFile(envFile string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("http_hsts", false)
	v.SetDefault("api_key", "")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_enforce_foreign_keys", false)
	v.SetDefault("migrate_on_start", true)
	v.SetDefault("seed_on_start", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
			HSTS: v.GetBool("HTTP_HSTS"),
		},
		Auth: Auth{
			APIKey: v.GetString("API_KEY"),
		},
		Database: Database{
			Path:               v.GetString("DATABASE_PATH"),
			EnforceForeignKeys: v.GetBool("DATABASE_ENFORCE_FOREIGN_KEYS"),
			MigrateOnStart:     v.GetBool("MIGRATE_ON_START"),
			SeedOnStart:        v.GetBool("SEED_ON_START"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
