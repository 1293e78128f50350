package reporter

import (
	"encoding/json"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// JSONReporter outputs the check result in JSON format
type JSONReporter struct{}

// jsonOutput represents the JSON output structure
type jsonOutput struct {
	Summary       jsonSummary    `json:"summary"`
	Root          string         `json:"root"`
	LocalPackages []string       `json:"local_packages"`
	Manifests     []jsonManifest `json:"manifests"`
}

type jsonSummary struct {
	LocalPackages    int `json:"local_packages"`
	ManifestsChecked int `json:"manifests_checked"`
}

type jsonManifest struct {
	Package string `json:"package"`
	Path    string `json:"path"`
}

// Report generates JSON output for the given result
func (r *JSONReporter) Report(result *models.Reconciliation) ([]byte, error) {
	output := jsonOutput{
		Summary: jsonSummary{
			LocalPackages:    len(result.Local),
			ManifestsChecked: len(result.Manifests),
		},
		Root:          result.Root,
		LocalPackages: result.Local,
		Manifests:     make([]jsonManifest, 0, len(result.Manifests)),
	}
	if output.LocalPackages == nil {
		output.LocalPackages = []string{}
	}

	for _, m := range result.Manifests {
		output.Manifests = append(output.Manifests, jsonManifest{Package: m.Name, Path: m.Path})
	}

	return json.MarshalIndent(output, "", "  ")
}
