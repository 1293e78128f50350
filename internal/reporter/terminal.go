package reporter

import (
	"fmt"
	"strings"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// TerminalReporter outputs the local packages in a human-readable format
type TerminalReporter struct{}

// Report generates terminal output for the given result
func (r *TerminalReporter) Report(result *models.Reconciliation) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Found %d local packages (root: %s)\n", len(result.Local), result.Root))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	for _, name := range result.Local {
		sb.WriteString(name + "\n")
	}

	if len(result.Manifests) > 0 {
		sb.WriteString(fmt.Sprintf("\nChecked %d manifests:\n", len(result.Manifests)))
		for _, m := range result.Manifests {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", m.Path, m.Name))
		}
	}

	return []byte(sb.String()), nil
}
