package models

import "go.trai.ch/zerr"

var (
	// ErrMissingLockfile is returned when the lockfile does not exist.
	// It usually means the lockfile was never generated.
	ErrMissingLockfile = zerr.New("lockfile not found")

	// ErrLockfileUnreadable is returned when the lockfile exists but cannot be read.
	ErrLockfileUnreadable = zerr.New("failed to read lockfile")

	// ErrMalformedDocument is returned when a lockfile or manifest is not valid TOML.
	ErrMalformedDocument = zerr.New("malformed TOML")

	// ErrInvalidLockfile is returned when a lockfile is valid TOML but does not have the lockfile shape.
	ErrInvalidLockfile = zerr.New("invalid lockfile")

	// ErrManifestNoName is returned when a manifest does not declare package.name.
	ErrManifestNoName = zerr.New("manifest doesn't specify a package name")

	// ErrManifestBadNameType is returned when package.name is not a string.
	ErrManifestBadNameType = zerr.New("package name is not a string")

	// ErrManifestUnreadable is returned when a manifest found during the scan cannot be read.
	ErrManifestUnreadable = zerr.New("failed to read manifest")

	// ErrMissedPackage is returned when a manifest on disk declares a package the lockfile doesn't list as local.
	ErrMissedPackage = zerr.New("package missing from lockfile")

	// ErrInvalidInvocation is returned when no cargo subcommand was given.
	ErrInvalidInvocation = zerr.New("no cargo subcommand specified")

	// ErrActionFailed is returned when a per-package cargo invocation fails.
	ErrActionFailed = zerr.New("subcommand failed")
)
