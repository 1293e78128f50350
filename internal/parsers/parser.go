package parsers

import "github.com/ethanolivertroy/cargo-local-pkgs/internal/models"

// Parser is the interface for manifest parsers used by the scanner
type Parser interface {
	// CanParse returns true if this parser can handle the given filename
	CanParse(filename string) bool

	// Parse extracts the declared package from the file content
	Parse(filepath string, content []byte) (models.ManifestEntry, error)
}
