package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/parsers"
	"go.trai.ch/zerr"
)

// Scanner orchestrates the local package check
type Scanner struct {
	config *models.Config
	parser parsers.Parser
	logger *log.Logger
}

// New creates a new Scanner with the given configuration
func New(config *models.Config, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		config: config,
		parser: parsers.NewManifestParser(config.ManifestName),
		logger: logger,
	}
}

// Scan reads the lockfile, scans the workspace for manifests and verifies
// that every manifest on disk belongs to a local package of the lockfile
func (s *Scanner) Scan(ctx context.Context) (*models.Reconciliation, error) {
	// Step 1: Parse the lockfile
	lockPath := filepath.Join(s.config.Dir, s.config.LockfileName)
	s.logger.Debug("reading lockfile", "path", lockPath)
	lf, err := parsers.LoadLockfile(lockPath)
	if err != nil {
		return nil, err
	}

	// Step 2: Classify packages
	local := LocalPackages(lf)
	for _, pkg := range lf.Packages {
		if !pkg.IsLocal() {
			s.logger.Debug("skipping sourced package", "package", pkg.String(), "source", *pkg.Source)
		}
	}
	s.logger.Debug("classified lockfile packages",
		"root", lf.Root.Name, "total", len(lf.Packages)+1, "local", len(local))

	// Step 3: Find every manifest on disk
	manifests, err := ScanManifests(ctx, s.config.Dir, s.parser, s.config.SkipDirs)
	if err != nil {
		return nil, err
	}
	for _, m := range manifests {
		s.logger.Debug("found manifest", "package", m.Name, "path", m.Path)
	}
	s.logger.Debug("scanned workspace", "manifests", len(manifests), "packages", ManifestNames(manifests))
	dups := duplicateDeclarations(manifests)
	for _, name := range slices.Sorted(maps.Keys(dups)) {
		s.logger.Warn("package declared by several manifests", "package", name, "paths", dups[name])
	}

	// Step 4: Cross-check
	if err := Reconcile(local, manifests); err != nil {
		return nil, err
	}

	return &models.Reconciliation{
		Root:      lf.Root.Name,
		Local:     local,
		Manifests: manifests,
	}, nil
}

// ScanManifests walks root and parses every file p accepts. Directories
// named in skip are not descended into. The first unreadable or invalid
// manifest aborts the scan, as does cancelling ctx.
//
// Entries are sorted by path so that reconciliation always reports the
// same missed package first
func ScanManifests(ctx context.Context, root string, p parsers.Parser, skip []string) ([]models.ManifestEntry, error) {
	var entries []models.ManifestEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return unreadable(path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && slices.Contains(skip, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !p.CanParse(d.Name()) {
			return nil
		}
		content, err := os.ReadFile(path) //nolint:gosec // path comes from the walk
		if err != nil {
			return unreadable(path, err)
		}
		entry, err := p.Parse(path, content)
		if err != nil {
			return zerr.With(zerr.Wrap(err, path), "path", path)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b models.ManifestEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

func unreadable(path string, err error) error {
	return zerr.With(fmt.Errorf("%w: %w", models.ErrManifestUnreadable, err), "path", path)
}
