package reporter

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

const missedPackageRule = "missed-package"

// SARIFReporter outputs check results in SARIF format for GitHub Code Scanning
type SARIFReporter struct{}

// SARIF structures
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShortDescription sarifText       `json:"shortDescription"`
	Help             sarifText       `json:"help"`
	DefaultConfig    sarifRuleConfig `json:"defaultConfiguration"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifText         `json:"message"`
	Locations           []sarifLocation   `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Report generates a SARIF log for a successful check, which has no results
func (r *SARIFReporter) Report(result *models.Reconciliation) ([]byte, error) {
	return r.marshal([]sarifResult{})
}

// ReportMissed generates a SARIF log with one result located at the
// manifest of the missed package
func (r *SARIFReporter) ReportMissed(missed *models.MissedPackageError) ([]byte, error) {
	msg := fmt.Sprintf("Package %s is declared here but is not a local package of the lockfile. "+
		"Add it to the workspace and regenerate the lockfile.", missed.Package)

	return r.marshal([]sarifResult{{
		RuleID:    missedPackageRule,
		RuleIndex: 0,
		Level:     "error",
		Message:   sarifText{Text: msg},
		Locations: []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(missed.Manifest)},
			},
		}},
		PartialFingerprints: map[string]string{
			"primaryLocationLineHash": missed.Package + ":" + filepath.ToSlash(missed.Manifest),
		},
	}})
}

func (r *SARIFReporter) marshal(results []sarifResult) ([]byte, error) {
	report := sarifReport{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "cargo-local-pkgs",
					InformationURI: "https://github.com/ethanolivertroy/cargo-local-pkgs",
					Rules: []sarifRule{{
						ID:   missedPackageRule,
						Name: "MissedPackage",
						ShortDescription: sarifText{
							Text: "Manifest declares a package the lockfile does not list as local",
						},
						Help: sarifText{
							Text: "Every Cargo.toml in the workspace must belong to a local package of Cargo.lock. " +
								"Add the package to the workspace members and regenerate the lockfile.",
						},
						DefaultConfig: sarifRuleConfig{Level: "error"},
					}},
				},
			},
			Results: results,
		}},
	}

	return json.MarshalIndent(report, "", "  ")
}
