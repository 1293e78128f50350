package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/config"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/reporter"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/runner"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/scanner"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// version is set at build time via ldflags
var version = "dev"

// subcommandName is the argument cargo inserts when it runs us as
// `cargo local-pkgs`
const subcommandName = "local-pkgs"

// Execute runs the command line and exits with a code describing the outcome
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(args) > 0 && args[0] == subcommandName {
		args = args[1:]
	}

	logger := newLogger(stderr, log.InfoLevel)
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(withLogger(ctx, logger))
	if err != nil {
		zerr.Log(ctx, slog.New(logger), err)
	}
	return exitCodeForError(err)
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "cargo-local-pkgs [flags] <cargo-subcommand> [args...]",
		Short: "Run a cargo subcommand for every local package of a workspace",
		Long: `cargo-local-pkgs reads Cargo.lock, collects every package without a
source (the packages developed inside the workspace) and runs the given cargo
subcommand once per package with -p <package>.

Before running anything it scans the workspace for Cargo.toml files and
fails if one of them declares a package the lockfile does not list as local.

Examples:
  # Test every local package
  cargo local-pkgs test

  # Forward extra arguments to every invocation
  cargo local-pkgs build --release

  # Only print the verified local packages
  cargo local-pkgs --list --format json

  # Write a SARIF report when the check fails
  cargo local-pkgs --list --format sarif --output local-pkgs.sarif`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocalPkgs(cmd, args, configFile)
		},
	}

	// Everything after the cargo subcommand belongs to cargo.
	cmd.Flags().SetInterspersed(false)

	def := models.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: <dir>/"+config.FileName+")")
	cmd.Flags().String("dir", def.Dir, "Workspace directory holding the lockfile")
	cmd.Flags().String("lockfile", def.LockfileName, "Lockfile name")
	cmd.Flags().String("manifest", def.ManifestName, "Manifest file name to scan for")
	cmd.Flags().StringSlice("skip", def.SkipDirs, "Directory names not scanned for manifests")
	cmd.Flags().String("cargo", def.Cargo, "Cargo binary to invoke")
	cmd.Flags().String("cargo-args", "", "Arguments passed to every cargo invocation instead of the forwarded ones")
	cmd.Flags().Bool("list", false, "Print the local packages instead of running a subcommand")
	cmd.Flags().StringP("format", "f", def.OutputFormat, "Output format: terminal, json, sarif")
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	return cmd
}

func runLocalPkgs(cmd *cobra.Command, args []string, configFile string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if len(args) == 0 && !cfg.ListOnly {
		return zerr.With(fmt.Errorf("%w", models.ErrInvalidInvocation), "usage", cmd.UseLine())
	}

	result, err := scanner.New(cfg, logger).Scan(ctx)
	if err != nil {
		var missed *models.MissedPackageError
		if errors.As(err, &missed) && cfg.OutputFormat == "sarif" {
			if werr := writeMissedReport(cmd, cfg, missed); werr != nil {
				logger.Warn("failed to write SARIF report", "err", werr)
			}
		}
		return err
	}
	logger.Debug("verified local packages", "packages", result.Local)

	if cfg.ListOnly || cfg.OutputFile != "" {
		if err := writeReport(cmd, cfg, result); err != nil {
			return err
		}
	}
	if cfg.ListOnly {
		return nil
	}

	action, forwarded := args[0], args[1:]
	if cfg.CargoArgs != nil {
		forwarded = cfg.CargoArgs
	}

	r := runner.New(cfg.Cargo, cfg.Dir, logger)
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = cmd.ErrOrStderr()
	return r.Run(ctx, action, result.Local, forwarded)
}

func writeReport(cmd *cobra.Command, cfg *models.Config, result *models.Reconciliation) error {
	output, err := reporter.Get(cfg.OutputFormat).Report(result)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return writeOutput(cmd, cfg, output)
}

func writeMissedReport(cmd *cobra.Command, cfg *models.Config, missed *models.MissedPackageError) error {
	output, err := (&reporter.SARIFReporter{}).ReportMissed(missed)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return writeOutput(cmd, cfg, output)
}

func writeOutput(cmd *cobra.Command, cfg *models.Config, output []byte) error {
	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, output, 0644); err != nil { //nolint:gosec // reports are meant to be shared
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", cfg.OutputFile)
		return nil
	}
	_, err := cmd.OutOrStdout().Write(output)
	return err
}
