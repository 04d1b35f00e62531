package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/client"
	"github.com/atharvakonge/tradedesk/internal/config"
	"github.com/atharvakonge/tradedesk/internal/logger"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configDir string
	apiURL    string
	verbose   bool
}

// newClient loads config (with .env and environment overrides) and builds
// an API client. --api wins over client.base_url.
func (o *rootOptions) newClient() (*client.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.apiURL != "" {
		cfg.Client.BaseURL = o.apiURL
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(level, "console")
	if err != nil {
		log = zap.NewNop()
	}
	return client.New(cfg.Client, log), nil
}

// NewRootCmd builds the tradedesk command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "tradedesk",
		Short: "Command-line companion for the tradedesk server",
		Long: `tradedesk talks to a running tradedesk API server.

It can:
  - export a trader's history as trade_history.json
  - print derived statistics, badges and skill tier
  - show the simulated F&O movers board
  - ask the trading assistant a question
  - browse and bookmark tutorials
  - add virtual funds to a profile`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "./configs", "directory containing config.yml")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL (overrides client.base_url)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests")

	cmd.AddCommand(
		newExportCmd(opts),
		newStatsCmd(opts),
		newMoversCmd(opts),
		newAskCmd(opts),
		newTutorialsCmd(opts),
		newBookmarkCmd(opts),
		newFundsCmd(opts),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
