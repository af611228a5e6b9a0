package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-barber-client/mockapi"
	"github.com/jrsteele09/go-barber-client/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local web UI",
		Long: `Start the local web UI on PORT.

Every page request is a navigation: it passes the route guard first and is
redirected when the session may not see it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			handler, err := server.New(cfg, a)
			if err != nil {
				return err
			}

			displayAppname(cmd.OutOrStdout(), cfg.GetAppName())
			log.Info().Str("api", cfg.GetAPIBaseURL()).Bool("authenticated", a.Session.IsAuthenticated()).Msg("Session restored")
			return serve(cmd.Context(), &http.Server{Addr: cfg.GetPort(), Handler: handler})
		},
	}
}

func newMockAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mockapi",
		Short: "Start a local fake of the booking API",
		Long: `Start an in-memory fake of the booking API on MOCK_PORT, seeded with a demo
owner and a demo client.

Point the client at it with API_BASE_URL=http://localhost:9090/api/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			api := mockapi.New(cfg.GetMockJWTSecret(), cfg.GetMockTokenTTL())
			owner, client, err := api.Seed()
			if err != nil {
				return err
			}

			displayAppname(cmd.OutOrStdout(), "mock api")
			log.Info().
				Str("owner", owner.Profile.Email).
				Str("client", client.Profile.Email).
				Str("password", mockapi.DemoPassword).
				Msg("Demo accounts")
			return serve(cmd.Context(), &http.Server{Addr: cfg.GetMockPort(), Handler: api})
		},
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(srv)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return shutdown(srv)
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}
