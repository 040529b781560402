// Package ingest parses expense-export files into the in-memory entities the
// analytics engine consumes. Two formats are supported: the canonical JSON
// export and a flattened two-party CSV export. Data-shape errors (missing
// ids, negative costs, unparseable dates) fail fast here; integrity problems
// are left for the verifier.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/GauthamPrabhuM/SplitSense/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Export is the parsed content of one export file.
type Export struct {
	Expenses      []models.Expense
	Groups        []models.Group
	CurrentUserID int64
}

// ParseFile parses an export file, dispatching on the file extension.
func ParseFile(path string) (*Export, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSONFile(path)
	case ".csv":
		return ParseCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported export format: %s (expected .json or .csv)", path)
	}
}

// ValidateFormat checks whether the file parses without ingesting it fully.
func ValidateFormat(path string) (bool, error) {
	_, err := ParseFile(path)
	if err != nil {
		return false, err
	}
	return true, nil
}
