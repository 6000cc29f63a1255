//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name: "valid console logger",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeConsole,
			},
			expectedError: false,
		},
		{
			name: "valid file logger with rotation",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				FilePath:   "/var/log/juliabase/server.log",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: false,
		},
		{
			name: "missing log level",
			settings: &LoggerSettings{
				LogType: LogTypeConsole,
			},
			expectedError: true,
		},
		{
			name: "invalid log type",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  "invalid",
			},
			expectedError: true,
		},
		{
			name: "file logger without file path",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeFile,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name: "valid postgres settings",
			settings: &DatabaseSettings{
				Type:   PostgresDbType,
				DSN:    "host=localhost user=juliabase password=secret",
				DBName: "juliabase",
			},
			expectedError: false,
		},
		{
			name: "valid sqlite settings",
			settings: &DatabaseSettings{
				Type:   SqliteDbType,
				DSN:    ":memory:",
				DBName: "juliabase",
			},
			expectedError: false,
		},
		{
			name: "unsupported type",
			settings: &DatabaseSettings{
				Type:   "mysql",
				DSN:    "user:password@tcp(localhost:3306)/dbname",
				DBName: "juliabase",
			},
			expectedError: true,
		},
		{
			name: "missing DSN",
			settings: &DatabaseSettings{
				Type:   PostgresDbType,
				DBName: "juliabase",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthSettingsValidation(t *testing.T) {
	valid := &AuthSettings{
		TokenSecret:   "0123456789abcdef0123456789abcdef",
		TokenLifetime: 480,
	}
	require.NoError(t, valid.Validate())

	shortSecret := &AuthSettings{
		TokenSecret:   "too-short",
		TokenLifetime: 480,
	}
	require.Error(t, shortSecret.Validate())

	withBootstrap := &AuthSettings{
		TokenSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetime:          480,
		BootstrapAdminLogin:    "admin",
		BootstrapAdminPassword: "long-enough-password",
	}
	require.NoError(t, withBootstrap.Validate())

	bootstrapWithoutPassword := &AuthSettings{
		TokenSecret:         "0123456789abcdef0123456789abcdef",
		TokenLifetime:       480,
		BootstrapAdminLogin: "admin",
	}
	require.Error(t, bootstrapWithoutPassword.Validate())
}
