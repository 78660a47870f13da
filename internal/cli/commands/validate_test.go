package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/cli/testutil"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllValid(t *testing.T) {
	useOutput(t, "text")
	dir := testutil.SetupTestProject(t)
	example := filepath.Join(dir, "example.csv")

	out, _, err := execute(NewValidateCommand(), example, filepath.Join(dir, "car.csv"))
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "✓ "+example+" (2 questions, 2 rules)")
}

func TestValidate_Invalid(t *testing.T) {
	useOutput(t, "json")
	dir := testutil.SetupTestProject(t)
	broken := filepath.Join(dir, "broken.csv")
	missing := filepath.Join(dir, "missing.csv")

	out, _, err := execute(NewValidateCommand(), filepath.Join(dir, "car.csv"), broken, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnresolvedReference, "first invalid file in argument order")

	var got output.ValidateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	require.Len(t, got.Results, 3)

	assert.True(t, got.Results[0].Valid)
	assert.Equal(t, 4, got.Results[0].Questions)

	assert.Equal(t, output.ValidateResult{
		File:   broken,
		Error:  got.Results[1].Error,
		Kind:   "unresolved reference",
		Row:    1,
		Column: "RULES",
	}, got.Results[1])
	assert.Contains(t, got.Results[1].Error, "missing")

	assert.Equal(t, "i/o failure", got.Results[2].Kind)
}

func TestValidate_Markdown(t *testing.T) {
	useOutput(t, "markdown")
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(NewValidateCommand(), filepath.Join(dir, "broken.csv"))
	require.Error(t, err)
	assert.Contains(t, out, "# Validation")
	assert.Contains(t, out, "- ✗ ")
}
