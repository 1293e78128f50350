package models

// Config holds configuration for a local package check
type Config struct {
	// Workspace settings
	Dir          string   // Directory holding the lockfile; also the scan root
	LockfileName string   // Lockfile file name, relative to Dir
	ManifestName string   // Manifest file name matched during the scan
	SkipDirs     []string // Directory names never descended into

	// Action settings
	Cargo     string   // Cargo binary used for per-package invocations
	CargoArgs []string // Overrides the forwarded arguments when non-nil, even if empty

	// Output settings
	OutputFormat string // "terminal", "json", "sarif"
	OutputFile   string // Optional output file path
	ListOnly     bool   // Print the local packages instead of running an action

	Verbose bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Dir:          ".",
		LockfileName: "Cargo.lock",
		ManifestName: "Cargo.toml",
		SkipDirs:     []string{"target", ".git"},
		Cargo:        "cargo",
		OutputFormat: "terminal",
	}
}
