package reporter

import "github.com/ethanolivertroy/cargo-local-pkgs/internal/models"

// Reporter is the interface for output formatters
type Reporter interface {
	// Report generates output for a successful check
	Report(result *models.Reconciliation) ([]byte, error)
}

// Get returns a reporter for the specified format
func Get(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "sarif":
		return &SARIFReporter{}
	default:
		return &TerminalReporter{}
	}
}
