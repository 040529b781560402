package normalizer

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/GauthamPrabhuM/SplitSense/internal/currencyutils"
)

// RateTable maps currency codes to their rate relative to USD (USD = 1.0).
type RateTable map[string]decimal.Decimal

// DefaultRates is the built-in static rate table, used when no rates file is
// configured. Rates are snapshots, not live quotes.
func DefaultRates() RateTable {
	return RateTable{
		"USD": decimal.RequireFromString("1.0"),
		"EUR": decimal.RequireFromString("1.10"),
		"GBP": decimal.RequireFromString("1.27"),
		"INR": decimal.RequireFromString("0.012"),
		"CAD": decimal.RequireFromString("0.74"),
		"AUD": decimal.RequireFromString("0.65"),
		"CHF": decimal.RequireFromString("1.12"),
	}
}

// rateFile is the YAML shape of an on-disk rate table.
type rateFile struct {
	Base  string            `yaml:"base"`
	Rates map[string]string `yaml:"rates"`
}

// LoadRates reads a rate table from a YAML file. Amount strings keep rates
// exact; a float-typed YAML mapping would not.
func LoadRates(path string) (RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", path, err)
	}

	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rates file %s: %w", path, err)
	}

	table := make(RateTable, len(f.Rates))
	for code, rate := range f.Rates {
		code = currencyutils.NormalizeCode(code)
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s in %s: %w", code, path, err)
		}
		if !d.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, d)
		}
		table[code] = d
	}

	base := currencyutils.NormalizeCode(f.Base)
	if base == "" {
		base = "USD"
	}
	if _, ok := table[base]; !ok {
		return nil, fmt.Errorf("rates file %s does not define its base currency %s", path, base)
	}

	return table, nil
}

// Rate returns the rate for a currency code, and whether the code is known.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t[currencyutils.NormalizeCode(code)]
	return r, ok
}
