package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dopler/internal/cli/config"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfgFile = ""

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "stats", "list", "inspect", "graph", "validate", "lint", "watch", "completion"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "output", "log-level", "log-format", "delimiter", "no-color", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_OutputFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := run(t, "stats", "-o", "json", filepath.Join(dir, "car.csv"))
	require.NoError(t, err)

	var got output.StatsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Total.Questions)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfg := filepath.Join(dir, "dopler.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: yaml\nlog_level: info\n"), 0o644))

	out, errOut, err := run(t, "--config", cfg, "stats", filepath.Join(dir, "example.csv"))
	require.NoError(t, err)

	assert.Contains(t, out, "questions: 2")
	assert.Contains(t, errOut, "model statistics", "info-level statistics log")
	assert.Contains(t, errOut, "#Questions=2")
}

func TestRootCmd_DelimiterFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	_, _, err := run(t, "validate", "--delimiter", ",", filepath.Join(dir, "car.csv"))
	assert.Error(t, err, "semicolon file read with a forced comma delimiter")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	_, _, err := run(t, "stats", "-o", "html", "x.csv")
	assert.ErrorContains(t, err, "invalid output")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dopler")
}

func TestRootCmd_LintConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfg := filepath.Join(dir, "dopler.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: json\nlint:\n  severity:\n    DM01: error\n"), 0o644))

	out, _, err := run(t, "--config", cfg, "lint", filepath.Join(dir, "cyclic.csv"))
	assert.ErrorContains(t, err, "lint found 1 error(s)")

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Errors)
	require.Len(t, got.Files, 1)
	require.Len(t, got.Files[0].Diagnostics, 1)
	assert.Equal(t, "error", got.Files[0].Diagnostics[0].Severity)
}
