// Package runner invokes a cargo subcommand once per local package
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"go.trai.ch/zerr"
)

// Runner runs `<Cargo> <action> -p <pkg> <args...>` for each package
type Runner struct {
	Cargo  string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// New creates a Runner that shares the process's stdout and stderr
func New(cargo, dir string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cargo:  cargo,
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run invokes action for every package in order and stops at the first
// invocation that fails
func (r *Runner) Run(ctx context.Context, action string, pkgs, args []string) error {
	for _, pkg := range pkgs {
		argv := append([]string{action, "-p", pkg}, args...)
		cmd := exec.CommandContext(ctx, r.Cargo, argv...)
		cmd.Dir = r.Dir
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr

		r.Logger.Info("running", "command", r.Cargo+" "+strings.Join(argv, " "))
		if err := cmd.Run(); err != nil {
			err = fmt.Errorf("%w: %s %s -p %s: %w", models.ErrActionFailed, r.Cargo, action, pkg, err)
			// A killed child after cancellation is an interrupt, not a failed action.
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w: %w", ctxErr, err)
			}
			return zerr.With(err, "package", pkg)
		}
	}
	return nil
}
