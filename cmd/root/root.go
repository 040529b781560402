// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GauthamPrabhuM/SplitSense/internal/categorizer"
	"github.com/GauthamPrabhuM/SplitSense/internal/config"
	"github.com/GauthamPrabhuM/SplitSense/internal/currencyutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/ingest"
	"github.com/GauthamPrabhuM/SplitSense/internal/report"
	"github.com/GauthamPrabhuM/SplitSense/pkg/splitsense"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	UserID   int64
	Currency string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "splitsense",
		Short: "Analyze shared-expense exports: balances, spending trends and insights.",
		Long: `splitsense reconstructs a per-counterparty balance ledger from a
shared-expense export and derives spending, balance and statistical insights
for a single user.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to splitsense!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			// Propagate the configured logger to every package.
			currencyutils.SetLogger(Log)
			ingest.SetLogger(Log)
			categorizer.SetLogger(Log)
			report.SetLogger(Log)
			splitsense.SetLogger(Log)
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input export file (.json or .csv)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().Int64VarP(&SharedFlags.UserID, "user", "u", 0, "Current user id the analysis is computed for")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Currency, "currency", "c", "", "Target currency (overrides configuration)")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate export format before analysis")
}
