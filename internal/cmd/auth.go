package cmd

import (
	"fmt"

	"github.com/jrsteele09/go-barber-client/apiclient"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Long: `Sign in with email and password. The session is kept in the data folder
and shared with 'barber serve'.

Examples:
  barber login --email owner@barber.test --password Password123
  barber login --email client@barber.test --password Password123 --redirect /client/favorites`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			redirect, _ := cmd.Flags().GetString("redirect")
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				return fmt.Errorf("--password is required")
			}

			_, a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			landed, err := a.Login(cmd.Context(), email, password, redirect)
			if errors.Is(err, errors.ErrInvalidCredentials) {
				return fmt.Errorf("invalid email or password")
			}
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			user := a.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Email, user.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Landing on %s\n", landed.FullPath)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Email address (required)")
	cmd.Flags().String("password", "", "Password (required)")
	cmd.Flags().String("redirect", "", "Path to land on after signing in")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			if !a.Session.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			email := a.Session.User().Email
			if err := a.Logout(cmd.Context()); err != nil {
				// The local session is gone either way.
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s.\n", email)
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Show the signed-in user. The session is checked against the API, so a
token the server no longer accepts ends the session here too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !a.Session.IsAuthenticated() {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}

			user, err := a.API.Auth.Me(cmd.Context())
			if apiclient.IsUnauthenticated(err) {
				fmt.Fprintln(out, "Session expired. Not signed in.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("whoami: %w", err)
			}

			fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
			fmt.Fprintf(out, "Role: %s\n", user.Role)
			if org := user.Organization; org != nil {
				fmt.Fprintf(out, "Barbershop: %s (%s)\n", org.Name, org.ID)
			}
			return nil
		},
	}
}
