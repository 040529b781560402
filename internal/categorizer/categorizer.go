// Package categorizer enriches expenses that arrive without a category by
// matching their descriptions against a keyword table loaded from YAML.
package categorizer

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"

	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryConfig maps a category name to the keywords that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer matches expense descriptions against keyword patterns.
type Categorizer struct {
	categories []CategoryConfig
	fallback   string
}

// defaultCategories cover the common shared-expense descriptions; a YAML
// keywords file extends or replaces them.
var defaultCategories = []CategoryConfig{
	{Name: "Food & Drink", Keywords: []string{"restaurant", "pizza", "coffee", "bar", "dinner", "lunch", "grocery", "groceries"}},
	{Name: "Entertainment", Keywords: []string{"netflix", "spotify", "cinema", "movie", "concert", "game"}},
	{Name: "Travel", Keywords: []string{"flight", "hotel", "airbnb", "train", "taxi", "uber", "fuel", "gas"}},
	{Name: "Utilities", Keywords: []string{"electricity", "water", "internet", "phone", "rent", "insurance"}},
}

// New creates a Categorizer with the built-in keyword table.
func New(fallback string) *Categorizer {
	if fallback == "" {
		fallback = "Uncategorized"
	}
	return &Categorizer{categories: defaultCategories, fallback: fallback}
}

// NewFromFile creates a Categorizer whose keyword table comes from a YAML
// file of CategoryConfig entries.
func NewFromFile(path, fallback string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file %s: %w", path, err)
	}

	var categories []CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file %s: %w", path, err)
	}

	c := New(fallback)
	if len(categories) > 0 {
		c.categories = categories
	}
	return c, nil
}

// Categorize returns the category for a description, and whether a keyword
// matched. Matching is case-insensitive substring containment.
func (c *Categorizer) Categorize(description string) (string, bool) {
	desc := strings.ToUpper(description)
	if strings.TrimSpace(desc) == "" {
		return "", false
	}

	for _, category := range c.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(desc, strings.ToUpper(keyword)) {
				log.WithFields(logrus.Fields{
					"keyword":  keyword,
					"category": category.Name,
				}).Debug("Expense categorized by keyword")
				return category.Name, true
			}
		}
	}

	return "", false
}

// Enrich fills the category of expenses that arrived without one. Already
// categorized expenses are left as-is; unmatched ones get the fallback.
func (c *Categorizer) Enrich(expenses []models.Expense) []models.Expense {
	enriched := make([]models.Expense, len(expenses))
	matched := 0
	for i, e := range expenses {
		if e.Category == "" {
			if category, ok := c.Categorize(e.Description); ok {
				e.Category = category
				matched++
			} else {
				e.Category = c.fallback
			}
		}
		enriched[i] = e
	}

	log.WithFields(logrus.Fields{
		"expenses": len(expenses),
		"matched":  matched,
	}).Debug("Category enrichment complete")

	return enriched
}
