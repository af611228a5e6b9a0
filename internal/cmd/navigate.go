package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jrsteele09/go-barber-client/navigation"
	"github.com/spf13/cobra"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Navigate to a path and print where the guard sends you",
		Long: `Navigate to a path with the current session and print the outcome.

Examples:
  barber open /provider/app/services
  barber open '/provider/app/agendamentos?date=2026-03-02'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			to, err := a.Navigator.Push(navigation.Location{Path: args[0]})
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if to.RedirectedFrom != nil {
				fmt.Fprintf(out, "redirect %s -> %s (%s)\n", to.RedirectedFrom.FullPath, to.FullPath, to.Name)
				return nil
			}
			fmt.Fprintf(out, "allow %s (%s)\n", to.FullPath, to.Name)
			return nil
		},
	}
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, err := navigation.NewRouter(navigation.DefaultRoutes())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATH\tAUTH\tROLE\tREDIRECT")
			for _, rec := range router.Records() {
				requiresAuth, role := navigation.Requirement(&navigation.Resolved{Matched: rec.Chain()})
				redirect := ""
				if rec.Redirect != nil {
					redirect = rec.Redirect.Name + rec.Redirect.Path
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", dash(rec.Name), rec.Pattern, requiresAuth, dash(role.String()), redirect)
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
