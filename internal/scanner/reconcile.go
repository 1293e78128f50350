package scanner

import (
	"slices"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// LocalPackages returns the root package followed by every dependency
// without a source, in lockfile order. Names are not deduplicated
func LocalPackages(lf *models.Lockfile) []string {
	local := []string{lf.Root.Name}
	for _, pkg := range lf.Packages {
		if pkg.IsLocal() {
			local = append(local, pkg.Name)
		}
	}
	return local
}

// Reconcile checks that every manifest declares one of the local packages.
// Names are compared exactly. The first manifest, in slice order, that
// declares an unknown package is reported as a *models.MissedPackageError
func Reconcile(local []string, manifests []models.ManifestEntry) error {
	known := make(map[string]struct{}, len(local))
	for _, name := range local {
		known[name] = struct{}{}
	}

	for _, m := range manifests {
		if _, ok := known[m.Name]; !ok {
			return &models.MissedPackageError{Package: m.Name, Manifest: m.Path}
		}
	}
	return nil
}

// ManifestNames returns the sorted set of names declared on disk
func ManifestNames(manifests []models.ManifestEntry) []string {
	names := make([]string, 0, len(manifests))
	for _, m := range manifests {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// duplicateDeclarations maps each name declared by more than one manifest
// to the declaring paths
func duplicateDeclarations(manifests []models.ManifestEntry) map[string][]string {
	paths := make(map[string][]string)
	for _, m := range manifests {
		paths[m.Name] = append(paths[m.Name], m.Path)
	}
	for name, p := range paths {
		if len(p) < 2 {
			delete(paths, name)
		}
	}
	return paths
}
