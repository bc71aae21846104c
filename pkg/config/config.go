// Package config resolves the input and output locations of a top-up run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables naming the five run locations.
const (
	EnvUsersFile        = "TOPUP_USERS_FILE"
	EnvCompaniesFile    = "TOPUP_COMPANIES_FILE"
	EnvOutputFile       = "TOPUP_OUTPUT_FILE"
	EnvBadUsersFile     = "TOPUP_BAD_USERS_FILE"
	EnvBadCompaniesFile = "TOPUP_BAD_COMPANIES_FILE"
)

// DefaultEnvFile is read when present; it never overrides the process
// environment.
const DefaultEnvFile = ".env"

// Config holds everything a run needs. The five paths are required;
// JSONReportFile is optional and empty disables the JSON report.
type Config struct {
	UsersFile        string
	CompaniesFile    string
	OutputFile       string
	BadUsersFile     string
	BadCompaniesFile string

	JSONReportFile string
	LogLevel       string
	Environment    string
}

// Default returns the locations used when nothing is configured.
func Default() Config {
	return Config{
		UsersFile:        "files/users.json",
		CompaniesFile:    "files/companies.json",
		OutputFile:       "output.txt",
		BadUsersFile:     "bad_users.txt",
		BadCompaniesFile: "bad_companies.txt",
		LogLevel:         "info",
		Environment:      "production",
	}
}

// Load resolves the configuration from defaults, then envFile (if it
// exists), then the process environment.
func Load(envFile string) (Config, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			vars, err := godotenv.Read(envFile)
			if err != nil {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
			fileVars = vars
		}
	}

	lookup := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v, ok := fileVars[key]; ok && v != "" {
			return v
		}
		return def
	}

	cfg := Default()
	cfg.UsersFile = lookup(EnvUsersFile, cfg.UsersFile)
	cfg.CompaniesFile = lookup(EnvCompaniesFile, cfg.CompaniesFile)
	cfg.OutputFile = lookup(EnvOutputFile, cfg.OutputFile)
	cfg.BadUsersFile = lookup(EnvBadUsersFile, cfg.BadUsersFile)
	cfg.BadCompaniesFile = lookup(EnvBadCompaniesFile, cfg.BadCompaniesFile)

	return cfg, nil
}

// ErrMissingPath is wrapped by Validate for every empty required path.
var ErrMissingPath = errors.New("path is required")

// Validate checks that every required location is set and that no output
// location is also an input.
func (c Config) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"users file", c.UsersFile},
		{"companies file", c.CompaniesFile},
		{"output file", c.OutputFile},
		{"bad users file", c.BadUsersFile},
		{"bad companies file", c.BadCompaniesFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, ErrMissingPath))
		}
	}

	inputs := map[string]bool{c.UsersFile: true, c.CompaniesFile: true}
	for _, out := range []string{c.OutputFile, c.BadUsersFile, c.BadCompaniesFile, c.JSONReportFile} {
		if out != "" && inputs[out] {
			errs = append(errs, fmt.Errorf("output %q would overwrite an input", out))
		}
	}

	return errors.Join(errs...)
}
