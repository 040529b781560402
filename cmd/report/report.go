// Package report exports analysis results to files
package report

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GauthamPrabhuM/SplitSense/cmd/common"
	"github.com/GauthamPrabhuM/SplitSense/cmd/root"
	"github.com/GauthamPrabhuM/SplitSense/internal/report"
	"github.com/GauthamPrabhuM/SplitSense/pkg/splitsense"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Export the analysis as JSON and CSV files",
	Long: `Run the full analysis and write it to a directory: the complete report
as JSON plus the category, subscription and friction breakdowns as CSV tables.`,
	Run: reportFunc,
}

func reportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Report command called")

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("An output directory is required (--output)")
	}

	expenses, groups, userID, err := common.LoadNormalized(
		root.SharedFlags.Input, root.SharedFlags.UserID, root.SharedFlags.Currency,
		root.Cfg, root.SharedFlags.Validate, root.Log)
	if err != nil {
		root.Log.Fatalf("Error loading export: %v", err)
	}

	insights := splitsense.AnalyzeAll(userID, expenses, groups, splitsense.Options{
		AnomalyMultiplier: root.Cfg.Analysis.AnomalyMultiplier,
		MonthsAhead:       root.Cfg.Analysis.MonthsAhead,
	})

	dir := root.SharedFlags.Output
	if err := report.WriteJSON(&insights, filepath.Join(dir, "report.json")); err != nil {
		root.Log.Fatalf("Error writing JSON report: %v", err)
	}
	if err := report.WriteCSVTables(&insights, dir); err != nil {
		root.Log.Fatalf("Error writing CSV tables: %v", err)
	}

	root.Log.Info("Report generation completed successfully!")
}
