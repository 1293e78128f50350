// Package config builds the effective models.Config from defaults, an
// optional config file, CARGO_LOCAL_PKGS_* environment variables and flags
package config

import (
	"errors"
	"strings"

	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

const (
	envPrefix = "CARGO_LOCAL_PKGS"

	// FileName is the config file looked up in the workspace directory
	// when no --config flag is given.
	FileName = ".cargo-local-pkgs.toml"
)

// flagKeys maps config keys to the flags that override them
var flagKeys = map[string]string{
	"dir":        "dir",
	"lockfile":   "lockfile",
	"manifest":   "manifest",
	"skip":       "skip",
	"cargo":      "cargo",
	"cargo_args": "cargo-args",
	"format":     "format",
	"output":     "output",
	"list":       "list",
	"verbose":    "verbose",
}

// Load returns the configuration for one invocation. Precedence, lowest
// first: defaults, config file, environment, flags set on the command line.
// flags may be nil
func Load(flags *pflag.FlagSet, configFile string) (*models.Config, error) {
	v := viper.New()

	def := models.DefaultConfig()
	v.SetDefault("dir", def.Dir)
	v.SetDefault("lockfile", def.LockfileName)
	v.SetDefault("manifest", def.ManifestName)
	v.SetDefault("skip", def.SkipDirs)
	v.SetDefault("cargo", def.Cargo)
	v.SetDefault("format", def.OutputFormat)
	v.SetDefault("output", def.OutputFile)
	v.SetDefault("list", def.ListOnly)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, zerr.With(zerr.Wrap(err, "failed to bind flag"), "flag", name)
				}
			}
		}
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	cfg := &models.Config{
		Dir:          v.GetString("dir"),
		LockfileName: v.GetString("lockfile"),
		ManifestName: v.GetString("manifest"),
		SkipDirs:     v.GetStringSlice("skip"),
		Cargo:        v.GetString("cargo"),
		OutputFormat: v.GetString("format"),
		OutputFile:   v.GetString("output"),
		ListOnly:     v.GetBool("list"),
		Verbose:      v.GetBool("verbose"),
	}
	// A string is split on whitespace; a TOML array is taken as is. Set but
	// empty still overrides the forwarded arguments.
	if v.IsSet("cargo_args") {
		cfg.CargoArgs = v.GetStringSlice("cargo_args")
		if cfg.CargoArgs == nil {
			cfg.CargoArgs = []string{}
		}
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read config file"), "path", configFile)
		}
		return nil
	}

	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString("dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return zerr.Wrap(err, "failed to read config file")
	}
	return nil
}
