package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/breynerciro/restaurante-app/internal/infrastructure/config"
	"github.com/breynerciro/restaurante-app/internal/logging"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurante",
		Short: "Restaurant reservation backend",
	}
	cmd.AddCommand(NewServerCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewReservationsCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// setup loads .env overrides, the environment configuration and a
// logger. Shared by every command that touches the store.
func setup() (config.Config, *slog.Logger, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	return cfg, logger, nil
}
