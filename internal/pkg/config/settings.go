package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DatabaseSettings holds the database connection configuration.
type DatabaseSettings struct {
	Type   string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN    string `mapstructure:"dsn" validate:"required"`
	DBName string `mapstructure:"db_name" validate:"required"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}

// AuthSettings holds the token signing configuration for the remote protocol
// and the optional first-admin seed. Account registration requires an admin
// token, so a fresh database needs one seeded account to mint the rest.
type AuthSettings struct {
	TokenSecret   string `mapstructure:"token_secret" validate:"required,min=32"`
	TokenLifetime int    `mapstructure:"token_lifetime_minutes" validate:"required,min=1,max=10080"`

	// BootstrapAdminLogin names the admin account ensured at startup. Empty
	// disables seeding.
	BootstrapAdminLogin    string `mapstructure:"bootstrap_admin_login"`
	BootstrapAdminPassword string `mapstructure:"bootstrap_admin_password" validate:"required_with=BootstrapAdminLogin,omitempty,min=8"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}

// FeedSettings holds the news feed configuration.
type FeedSettings struct {
	// MaxEntriesPerUser caps the number of stored feed entries per recipient;
	// older entries are pruned on fan-out.
	MaxEntriesPerUser int `mapstructure:"max_entries_per_user" validate:"required,min=1,max=1000"`
	// BaseURL is used for entry links in the Atom rendering.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// Validate checks that all fields in FeedSettings are valid
func (s *FeedSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for FeedSettings: %w", err)
	}
	return nil
}

// ServerConfig aggregates all settings for the REST server.
type ServerConfig struct {
	Port     string           `mapstructure:"port" validate:"required"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Feeds    FeedSettings     `mapstructure:"feeds"`
}

// Validate checks the full server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Feeds.Validate(); err != nil {
		return err
	}
	return nil
}
