// Package config provides functionality for managing configuration options
// for the station using command-line flags, environment variables and a
// YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/labels"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// EnvPrefix prefixes every environment variable read by the station.
const EnvPrefix = "STATION"

// DefaultConfigFile is read when no -c/--config flag or CONFIG variable is given.
const DefaultConfigFile = "station.yaml"

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the PostgreSQL connection string. Empty disables
	// the login and label history.
	DatabaseDSN string

	// Config is the path to the config file.
	Config string

	// CredentialFile is the path to the obfuscated credential file (SZV.dat).
	CredentialFile string

	// LogLevel is the zap level name.
	LogLevel string

	// Station names this packing station in stored events.
	Station string

	// Retention is how long login events are kept in the database.
	Retention time.Duration

	// Labels are the configured label templates, sorted by key.
	Labels []models.LabelSpec
}

// RegisterFlags defines the station flags on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("address", "a", "localhost:8080", "run on ip:port server")
	flags.StringP("database-dsn", "d", "", "db address")
	flags.StringP("config", "c", DefaultConfigFile, "path to config file")
	flags.StringP("credentials", "f", "", "path to the credential file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("station", "", "station name recorded with login events and labels")
}

// Parse parses command-line arguments, environment variables and the config
// file into Options.
func Parse(args []string) (*Options, error) {
	flags := pflag.NewFlagSet("station", pflag.ContinueOnError)
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return Load(flags)
}

// Load resolves Options from a flag set already populated by RegisterFlags
// and parsed. Precedence is flags, then STATION_* variables, then the config
// file, then defaults.
func Load(flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	v.SetDefault("address", "localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("retention", 30*24*time.Hour)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("address", EnvPrefix+"_ADDRESS", "SERVER_ADDRESS")

	for key, flag := range map[string]string{
		"address":              "address",
		"database_dsn":         "database-dsn",
		"paths.szv_input_file": "credentials",
		"log_level":            "log-level",
		"station":              "station",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	path, explicit := configPath(flags)
	if err := readConfigFile(v, path, explicit); err != nil {
		return nil, err
	}

	specs, err := labels.ParseSpecs(v.GetStringMapString("labels"))
	if err != nil {
		return nil, err
	}

	return &Options{
		Address:        v.GetString("address"),
		DatabaseDSN:    v.GetString("database_dsn"),
		Config:         path,
		CredentialFile: v.GetString("paths.szv_input_file"),
		LogLevel:       v.GetString("log_level"),
		Station:        v.GetString("station"),
		Retention:      v.GetDuration("retention"),
		Labels:         specs,
	}, nil
}

// configPath returns the config file to read and whether the user asked for it.
func configPath(flags *pflag.FlagSet) (string, bool) {
	path, _ := flags.GetString("config")
	if flags.Changed("config") {
		return path, true
	}
	if env := os.Getenv("CONFIG"); env != "" {
		return env, true
	}
	return path, false
}

func readConfigFile(v *viper.Viper, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

// Validate checks that the credential file and every label template exist.
// All problems are reported together.
func (o *Options) Validate() error {
	var errs []error
	if o.CredentialFile == "" {
		errs = append(errs, errors.New("credential file path is not configured"))
	} else if _, err := os.Stat(o.CredentialFile); err != nil {
		errs = append(errs, fmt.Errorf("credential file: %w", err))
	}
	for _, l := range o.Labels {
		if _, err := os.Stat(l.Path); err != nil {
			errs = append(errs, fmt.Errorf("label %s: %w", l.Key, err))
		}
	}
	return errors.Join(errs...)
}
