package cmd

import (
	"context"
	"time"

	"github.com/jrsteele09/go-barber-client/app"
	"github.com/jrsteele09/go-barber-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the barber command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "barber",
		Short: "Barbershop booking client",
		Long: `barber is a local client for the barbershop booking API.

It keeps one signed-in session on disk and lets you browse the booking screens
through a local web UI, or drive the same session from the command line.

Examples:
  barber mockapi
  barber login --email owner@barber.test --password Password123
  barber open /provider/app/services
  barber serve`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug output, including every guard decision")

	root.AddCommand(
		newServeCmd(),
		newMockAPICmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newOpenCmd(),
		newRoutesCmd(),
	)
	return root
}

// Execute runs the command tree until ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig reads the environment and configures the global logger.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})
	}
	return cfg, nil
}

// loadApp restores the persisted session.
func loadApp(cmd *cobra.Command) (config.Config, *app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}
