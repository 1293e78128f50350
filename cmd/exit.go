package cmd

import (
	"context"
	"errors"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
)

// Exit codes. A failing cargo invocation is kept apart from an
// inconsistent or unreadable project
const (
	ExitOK              = 0
	ExitActionFailed    = 1
	ExitUsage           = 2
	ExitMissedPackage   = 3
	ExitMissingLockfile = 4
	ExitInvalidInput    = 5
	ExitInterrupted     = 130 // shell convention for SIGINT
)

var invalidInput = []error{
	models.ErrLockfileUnreadable,
	models.ErrMalformedDocument,
	models.ErrInvalidLockfile,
	models.ErrManifestNoName,
	models.ErrManifestBadNameType,
	models.ErrManifestUnreadable,
}

func exitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, models.ErrActionFailed):
		return ExitActionFailed
	case errors.Is(err, models.ErrMissedPackage):
		return ExitMissedPackage
	case errors.Is(err, models.ErrMissingLockfile):
		return ExitMissingLockfile
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return ExitInvalidInput
		}
	}
	return ExitUsage
}
