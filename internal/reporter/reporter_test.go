package reporter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.Reconciliation {
	return &models.Reconciliation{
		Root:  "app",
		Local: []string{"app", "core"},
		Manifests: []models.ManifestEntry{
			{Name: "app", Path: "Cargo.toml"},
			{Name: "core", Path: "core/Cargo.toml"},
		},
	}
}

func TestGet(t *testing.T) {
	assert.IsType(t, &JSONReporter{}, Get("json"))
	assert.IsType(t, &SARIFReporter{}, Get("sarif"))
	assert.IsType(t, &TerminalReporter{}, Get("terminal"))
	assert.IsType(t, &TerminalReporter{}, Get("unknown"))
}

func TestTerminalReporter(t *testing.T) {
	out, err := (&TerminalReporter{}).Report(sampleResult())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "Found 2 local packages (root: app)\n"))
	assert.Contains(t, text, "\napp\ncore\n")
	assert.Contains(t, text, "Checked 2 manifests:")
	assert.Contains(t, text, "  core/Cargo.toml (core)\n")
}

func TestTerminalReporter_noManifests(t *testing.T) {
	out, err := (&TerminalReporter{}).Report(&models.Reconciliation{Root: "app", Local: []string{"app"}})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Checked")
}

func TestJSONReporter(t *testing.T) {
	out, err := (&JSONReporter{}).Report(sampleResult())
	require.NoError(t, err)

	var got jsonOutput
	require.NoError(t, json.Unmarshal(out, &got))

	want := jsonOutput{
		Summary:       jsonSummary{LocalPackages: 2, ManifestsChecked: 2},
		Root:          "app",
		LocalPackages: []string{"app", "core"},
		Manifests: []jsonManifest{
			{Package: "app", Path: "Cargo.toml"},
			{Package: "core", Path: "core/Cargo.toml"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON report mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONReporter_emptyListsAreArrays(t *testing.T) {
	out, err := (&JSONReporter{}).Report(&models.Reconciliation{Root: "app"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"local_packages": []`)
	assert.Contains(t, string(out), `"manifests": []`)
}

func TestSARIFReporter_report(t *testing.T) {
	out, err := (&SARIFReporter{}).Report(sampleResult())
	require.NoError(t, err)

	var got sarifReport
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "2.1.0", got.Version)
	require.Len(t, got.Runs, 1)
	assert.Equal(t, "cargo-local-pkgs", got.Runs[0].Tool.Driver.Name)
	require.Len(t, got.Runs[0].Tool.Driver.Rules, 1)
	assert.Equal(t, missedPackageRule, got.Runs[0].Tool.Driver.Rules[0].ID)
	assert.Empty(t, got.Runs[0].Results)
	assert.Contains(t, string(out), `"results": []`)
}

func TestSARIFReporter_reportMissed(t *testing.T) {
	out, err := (&SARIFReporter{}).ReportMissed(&models.MissedPackageError{
		Package:  "utils",
		Manifest: "utils/Cargo.toml",
	})
	require.NoError(t, err)

	var got sarifReport
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got.Runs, 1)
	require.Len(t, got.Runs[0].Results, 1)

	res := got.Runs[0].Results[0]
	assert.Equal(t, missedPackageRule, res.RuleID)
	assert.Equal(t, "error", res.Level)
	assert.Contains(t, res.Message.Text, "utils")
	require.Len(t, res.Locations, 1)
	assert.Equal(t, "utils/Cargo.toml", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, "utils:utils/Cargo.toml", res.PartialFingerprints["primaryLocationLineHash"])
}
