package models

import "fmt"

// ManifestEntry is a package name declared by a manifest found on disk
type ManifestEntry struct {
	Name string
	Path string // Manifest file that declared Name
}

// Reconciliation is the outcome of a successful local package check
type Reconciliation struct {
	Root      string          // Name of the lockfile's root package
	Local     []string        // Local packages, root first, in lockfile order
	Manifests []ManifestEntry // Every manifest found on disk, sorted by path
}

// MissedPackageError reports an on-disk package the lockfile does not know
// about as a local package
type MissedPackageError struct {
	Package  string
	Manifest string
}

func (e *MissedPackageError) Error() string {
	return fmt.Sprintf("package %q declared in %s is not a local package of the lockfile "+
		"(you likely need to add it to the workspace and regenerate the lockfile)",
		e.Package, e.Manifest)
}

// Unwrap lets errors.Is match ErrMissedPackage
func (e *MissedPackageError) Unwrap() error { return ErrMissedPackage }
