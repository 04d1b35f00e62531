package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atharvakonge/tradedesk/internal/profile"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		user string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a trader's history as a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			data, err := c.Export(cmd.Context(), user)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "username")
	cmd.Flags().StringVarP(&out, "out", "o", profile.ExportFilename, "output file, - for stdout")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a trader's statistics and badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			s, err := c.Stats(cmd.Context(), user)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total trades:    %d\n", s.TotalTrades)
			fmt.Fprintf(w, "Win rate:        %.1f%%\n", s.WinRate)
			fmt.Fprintf(w, "Total profit:    $%.2f\n", s.TotalProfit)
			fmt.Fprintf(w, "Portfolio value: $%.2f\n", s.PortfolioValue)
			fmt.Fprintf(w, "Skill level:     %s\n", s.SkillLevel)
			for _, b := range s.Badges {
				fmt.Fprintf(w, "Badge:           %s\n", b)
			}
			if len(s.RecentTrades) > 0 {
				fmt.Fprintln(w, "Recent trades:")
				for _, t := range s.RecentTrades {
					fmt.Fprintf(w, "  %-10s %6d @ %8.2f  profit %8.2f\n", t.Symbol, t.Shares, t.Price, t.Profit)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "username")
	return cmd
}

func newFundsCmd(opts *rootOptions) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "funds <amount>",
		Short: "Add virtual funds to a trader's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			res, err := c.AddFunds(cmd.Context(), user, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: $%.2f\n", res.Balance)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "username")
	return cmd
}
