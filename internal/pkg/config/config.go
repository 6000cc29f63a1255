package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitializeServerConfig loads the server configuration from the YAML file at
// configPath, layered with environment variables (prefix JULIABASE, dots
// replaced by underscores, e.g. JULIABASE_DATABASE_DSN).
func InitializeServerConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetDefault("port", "8000")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", ":memory:")
	v.SetDefault("database.db_name", "juliabase")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("auth.token_lifetime_minutes", 8*60)
	v.SetDefault("feeds.max_entries_per_user", 100)
	v.SetDefault("feeds.base_url", "http://localhost:8000")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("juliabase")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/juliabase")
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("juliabase")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
