// Package report serializes an analysis run to files: the full report as
// JSON, and the ranked breakdowns as CSV tables.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/dateutils"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(insights *models.AllInsights, path string) error {
	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	log.WithField("file", path).Info("Wrote JSON report")
	return nil
}

// categoryRow is the CSV shape of one category breakdown line.
type categoryRow struct {
	Category   string `csv:"category"`
	Amount     string `csv:"amount"`
	Percentage string `csv:"percentage"`
}

// subscriptionRow is the CSV shape of one recurring-charge line.
type subscriptionRow struct {
	Pattern        string `csv:"pattern"`
	Category       string `csv:"category"`
	AverageAmount  string `csv:"average_amount"`
	FrequencyDays  string `csv:"frequency_days"`
	Occurrences    int    `csv:"occurrences"`
	TotalAmount    string `csv:"total_amount"`
	LastOccurrence string `csv:"last_occurrence"`
}

// frictionRow is the CSV shape of one person friction line.
type frictionRow struct {
	UserID        int64  `csv:"user_id"`
	UnpaidBalance string `csv:"unpaid_balance"`
	AverageDelay  string `csv:"average_delay_days"`
	FrictionScore string `csv:"friction_score"`
}

// WriteCSVTables writes the category, subscription and friction breakdowns
// as CSV files into dir.
func WriteCSVTables(insights *models.AllInsights, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	categories := make([]categoryRow, 0, len(insights.Categories.TopCategories))
	for _, c := range insights.Categories.TopCategories {
		categories = append(categories, categoryRow{
			Category:   c.Category,
			Amount:     c.Amount.StringFixed(2),
			Percentage: fmt.Sprintf("%.2f", c.Percentage),
		})
	}
	if err := writeCSV(filepath.Join(dir, "categories.csv"), categories); err != nil {
		return err
	}

	subscriptions := make([]subscriptionRow, 0, len(insights.Subscriptions.Subscriptions))
	for _, s := range insights.Subscriptions.Subscriptions {
		subscriptions = append(subscriptions, subscriptionRow{
			Pattern:        s.DescriptionPattern,
			Category:       s.Category,
			AverageAmount:  s.AverageAmount.StringFixed(2),
			FrequencyDays:  fmt.Sprintf("%.1f", s.FrequencyDays),
			Occurrences:    s.Occurrences,
			TotalAmount:    s.TotalAmount.StringFixed(2),
			LastOccurrence: dateutils.FormatDate(s.LastOccurrence, ""),
		})
	}
	if err := writeCSV(filepath.Join(dir, "subscriptions.csv"), subscriptions); err != nil {
		return err
	}

	friction := make([]frictionRow, 0, len(insights.Friction.ByPerson))
	for _, p := range insights.Friction.ByPerson {
		friction = append(friction, frictionRow{
			UserID:        p.UserID,
			UnpaidBalance: p.UnpaidBalance.StringFixed(2),
			AverageDelay:  fmt.Sprintf("%.1f", p.AverageDelayDays),
			FrictionScore: fmt.Sprintf("%.2f", p.FrictionScore),
		})
	}
	if err := writeCSV(filepath.Join(dir, "friction.csv"), friction); err != nil {
		return err
	}

	log.WithField("dir", dir).Info("Wrote CSV report tables")
	return nil
}

func writeCSV[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
