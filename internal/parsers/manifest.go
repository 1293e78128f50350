package parsers

import (
	"fmt"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// NameTypeError reports a package.name that is not a string. It matches
// models.ErrManifestBadNameType
type NameTypeError struct {
	Found string // TOML type of the value, e.g. "integer"
}

func (e *NameTypeError) Error() string {
	return fmt.Sprintf("package name is a %s (string required)", e.Found)
}

// Unwrap lets errors.Is match ErrManifestBadNameType
func (e *NameTypeError) Unwrap() error { return models.ErrManifestBadNameType }

// PackageName extracts package.name from manifest content
func PackageName(data []byte) (string, error) {
	tree, err := decodeTree(data)
	if err != nil {
		return "", err
	}

	// A non-table package key (or none at all) declares no name, the same as
	// a workspace-only manifest.
	pkg, ok := tree["package"].(map[string]any)
	if !ok {
		return "", models.ErrManifestNoName
	}
	v, ok := pkg["name"]
	if !ok {
		return "", models.ErrManifestNoName
	}
	name, ok := v.(string)
	if !ok {
		return "", &NameTypeError{Found: typeName(v)}
	}
	return name, nil
}

// ManifestParser parses package manifests (Cargo.toml by default)
type ManifestParser struct {
	Filename string
}

// NewManifestParser returns a parser for manifests called filename
func NewManifestParser(filename string) *ManifestParser {
	return &ManifestParser{Filename: filename}
}

// CanParse returns true for files named like the manifest
func (p *ManifestParser) CanParse(filename string) bool {
	return filename == p.Filename
}

// Parse extracts the declared package from manifest content
func (p *ManifestParser) Parse(filepath string, content []byte) (models.ManifestEntry, error) {
	name, err := PackageName(content)
	if err != nil {
		return models.ManifestEntry{}, err
	}
	return models.ManifestEntry{Name: name, Path: filepath}, nil
}
