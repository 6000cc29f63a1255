package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/juliabase/juliabase/internal/pkg/config"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"github.com/juliabase/juliabase/pkg/remote"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// registerServerFlag adds the common --server flag.
func registerServerFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("server", "", "", "Server base URL (default $JULIABASE_SERVER)")
}

// newRemoteClient builds a logged-in client from the --server flag and the
// JULIABASE_LOGIN / JULIABASE_PASSWORD environment variables.
func newRemoteClient(ctx context.Context, cmd *cobra.Command) (*remote.Client, error) {
	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return nil, fmt.Errorf("invalid server flag: %w", err)
	}
	if server == "" {
		server = os.Getenv("JULIABASE_SERVER")
	}
	if server == "" {
		return nil, fmt.Errorf("no server given: set --server or JULIABASE_SERVER")
	}

	loginName := os.Getenv("JULIABASE_LOGIN")
	password := os.Getenv("JULIABASE_PASSWORD")
	if loginName == "" || password == "" {
		return nil, fmt.Errorf("no credentials: set JULIABASE_LOGIN and JULIABASE_PASSWORD")
	}

	client := remote.NewClient(server)
	if err := client.Login(ctx, loginName, password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return client, nil
}
