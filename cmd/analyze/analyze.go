// Package analyze runs the full analysis pipeline over an export file
package analyze

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GauthamPrabhuM/SplitSense/cmd/common"
	"github.com/GauthamPrabhuM/SplitSense/cmd/root"
	"github.com/GauthamPrabhuM/SplitSense/internal/report"
	"github.com/GauthamPrabhuM/SplitSense/pkg/splitsense"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis over an expense export",
	Long: `Normalize an expense export, verify its consistency and compute every
insight for the given user: spending, balances, categories, groups, anomalies,
subscriptions, settlement efficiency, cash flow, prediction and friction.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Analyze command called")
	root.Log.Infof("Input export file: %s", root.SharedFlags.Input)

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

	if !insights.Validation.IsValid {
		root.Log.Warnf("Export has %d consistency errors; results may be skewed", len(insights.Validation.Errors))
	}

	if root.SharedFlags.Output != "" {
		if err := report.WriteJSON(&insights, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error writing report: %v", err)
		}
		root.Log.Info("Analysis completed successfully!")
		return
	}

	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error serializing report: %v", err)
	}
	fmt.Println(string(data))
}
