package models

// Package is one node of the dependency graph as recorded in the lockfile.
//
// The root package and every transitive dependency share this shape. The
// dependency list is kept as written in the lockfile; entries are never
// resolved to other packages, so cycles between them are harmless
type Package struct {
	Name    string
	Version string // Unchecked; usually semver but never parsed
	// Source locates a fetched package, for example
	// "registry+https://github.com/rust-lang/crates.io-index".
	// Nil means the package is developed inside the workspace.
	Source       *string
	Dependencies []string
}

// IsLocal reports whether the package has no source locator
func (p Package) IsLocal() bool {
	return p.Source == nil
}

// String returns a human-readable representation
func (p Package) String() string {
	return p.Name + "@" + p.Version
}

// Lockfile is a parsed, but otherwise unvalidated, lockfile
type Lockfile struct {
	Root     Package   // The [root] table: the workspace's main package
	Packages []Package // The [[package]] array: every transitive dependency
}
