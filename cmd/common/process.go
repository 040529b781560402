// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/categorizer"
	"github.com/GauthamPrabhuM/SplitSense/internal/config"
	"github.com/GauthamPrabhuM/SplitSense/internal/ingest"
	"github.com/GauthamPrabhuM/SplitSense/internal/models"
	"github.com/GauthamPrabhuM/SplitSense/internal/normalizer"
	"github.com/GauthamPrabhuM/SplitSense/pkg/splitsense"
)

// LoadNormalized ingests an export file, enriches categories, and normalizes
// everything to the target currency. This is the shared front half of every
// command's pipeline.
func LoadNormalized(inputFile string, userID int64, targetCurrency string, cfg *config.Config, validate bool, log *logrus.Logger) ([]models.Expense, []models.Group, int64, error) {
	if inputFile == "" {
		return nil, nil, 0, fmt.Errorf("an input export file is required")
	}

	if validate {
		log.Info("Validating export format...")
		valid, err := ingest.ValidateFormat(inputFile)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("error validating export: %w", err)
		}
		if !valid {
			return nil, nil, 0, fmt.Errorf("the export file is not in a supported format")
		}
		log.Info("Validation successful.")
	}

	export, err := ingest.ParseFile(inputFile)
	if err != nil {
		return nil, nil, 0, err
	}

	if userID == 0 {
		userID = export.CurrentUserID
	}
	if userID == 0 {
		return nil, nil, 0, fmt.Errorf("a current user id is required (--user or the export's current_user)")
	}

	cat, err := buildCategorizer(cfg, log)
	if err != nil {
		return nil, nil, 0, err
	}
	expenses := cat.Enrich(export.Expenses)

	if targetCurrency == "" {
		targetCurrency = cfg.Currency.Base
	}

	var rates normalizer.RateTable
	if cfg.Currency.RatesFile != "" {
		rates, err = normalizer.LoadRates(cfg.Currency.RatesFile)
		if err != nil {
			return nil, nil, 0, err
		}
		log.WithField("file", cfg.Currency.RatesFile).Info("Loaded exchange rates")
	}

	expenses, groups, err := splitsense.NormalizeWithRates(expenses, export.Groups, targetCurrency, rates)
	if err != nil {
		return nil, nil, 0, err
	}

	log.WithFields(logrus.Fields{
		"expenses": len(expenses),
		"groups":   len(groups),
		"user_id":  userID,
		"currency": targetCurrency,
	}).Info("Export loaded and normalized")

	return expenses, groups, userID, nil
}

func buildCategorizer(cfg *config.Config, log *logrus.Logger) (*categorizer.Categorizer, error) {
	if cfg.Categories.KeywordsFile == "" {
		return categorizer.New(cfg.Categories.FallbackCategory), nil
	}
	cat, err := categorizer.NewFromFile(cfg.Categories.KeywordsFile, cfg.Categories.FallbackCategory)
	if err != nil {
		return nil, err
	}
	log.WithField("file", cfg.Categories.KeywordsFile).Debug("Loaded category keywords")
	return cat, nil
}
