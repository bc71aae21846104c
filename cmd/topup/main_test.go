package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topup/pkg/config"
	"topup/pkg/engine"
)

func testConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.UsersFile = filepath.Join(dir, "users.json")
	cfg.CompaniesFile = filepath.Join(dir, "companies.json")
	cfg.OutputFile = filepath.Join(dir, "output.txt")
	cfg.BadUsersFile = filepath.Join(dir, "bad_users.txt")
	cfg.BadCompaniesFile = filepath.Join(dir, "bad_companies.txt")
	cfg.LogLevel = "error"

	require.NoError(t, os.WriteFile(cfg.UsersFile, []byte(`[
		{"company_id": 1, "first_name": "John", "last_name": "Doe", "tokens": 100,
		 "email": "john.doe@x.com", "active_status": true, "email_status": false},
		{"company_id": 1, "first_name": "Bad"}
	]`), 0o644))
	require.NoError(t, os.WriteFile(cfg.CompaniesFile, []byte(`[
		{"id": 1, "name": "Tech Corp", "top_up": 50, "email_status": true}
	]`), 0o644))

	return cfg, dir
}

func TestRunCommandWritesReport(t *testing.T) {
	cfg, _ := testConfig(t)

	cmd := newRootCmd(&cfg)
	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	output, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(output), "New Token Balance, 150")
	assert.FileExists(t, cfg.BadUsersFile)
	assert.NoFileExists(t, cfg.BadCompaniesFile)
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg, dir := testConfig(t)
	override := filepath.Join(dir, "elsewhere.txt")

	cmd := newRootCmd(&cfg)
	cmd.SetArgs([]string{"--output", override})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.FileExists(t, override)
}

func TestValidateCommandPrintsStats(t *testing.T) {
	cfg, _ := testConfig(t)

	var out bytes.Buffer
	cmd := newRootCmd(&cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"validate"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var stats engine.RunStats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, 2, stats.UsersLoaded)
	assert.Equal(t, 1, stats.UsersInvalid)
	assert.Equal(t, 1, stats.UsersValid)
	assert.NoFileExists(t, cfg.OutputFile)
}

func TestRunCommandRejectsInvalidConfig(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.OutputFile = ""

	cmd := newRootCmd(&cfg)
	cmd.SetArgs([]string{"run"})
	err := cmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingPath)
}
