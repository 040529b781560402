// Package verify runs the consistency checks over an export file
package verify

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GauthamPrabhuM/SplitSense/cmd/common"
	"github.com/GauthamPrabhuM/SplitSense/cmd/root"
	"github.com/GauthamPrabhuM/SplitSense/pkg/splitsense"
)

// Cmd represents the verify command
var Cmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check an expense export for internal consistency",
	Long: `Check that paid and owed totals balance per expense, that group ledgers
sum to zero, and that settlement repayments reconcile to their cost. Exits
non-zero when errors are found.`,
	Run: verifyFunc,
}

func verifyFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Verify command called")

	expenses, groups, userID, err := common.LoadNormalized(
		root.SharedFlags.Input, root.SharedFlags.UserID, root.SharedFlags.Currency,
		root.Cfg, root.SharedFlags.Validate, root.Log)
	if err != nil {
		root.Log.Fatalf("Error loading export: %v", err)
	}

	result := splitsense.Verify(userID, expenses, groups)

	for _, warning := range result.Warnings {
		root.Log.Warn(warning)
	}
	for _, msg := range result.Errors {
		root.Log.Error(msg)
	}

	if !result.IsValid {
		root.Log.Errorf("Verification failed: %d errors, %d warnings across %d checks",
			len(result.Errors), len(result.Warnings), len(result.Checks))
		os.Exit(1)
	}

	root.Log.Infof("Verification passed: %d checks, %d warnings", len(result.Checks), len(result.Warnings))
}
