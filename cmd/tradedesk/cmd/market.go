package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/atharvakonge/tradedesk/internal/market"
)

func newMoversCmd(opts *rootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "movers",
		Short: "Show the simulated F&O top gainers and losers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}

			snap, err := c.Movers(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printMovers(w, "Top gainers", snap.Gainers)
			printMovers(w, "Top losers", snap.Losers)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "roll a fresh board instead of the cached one")
	return cmd
}

func printMovers(w io.Writer, title string, movers []market.Mover) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(movers) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, m := range movers {
		fmt.Fprintf(w, "  %-10s %9.2f %7s  %s\n", m.Name, m.Price, m.ChangeLabel, m.Volatility)
	}
}
