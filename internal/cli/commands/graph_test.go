package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelIDs(g output.GraphOutput) [][]string {
	var ids [][]string
	for _, level := range g.Levels {
		var row []string
		for _, d := range level.Decisions {
			row = append(row, d.ID)
		}
		ids = append(ids, row)
	}
	return ids
}

func TestGraph_JSON(t *testing.T) {
	useOutput(t, "json")
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(NewGraphCommand(), filepath.Join(dir, "car.csv"))
	require.NoError(t, err)

	var got output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "car.csv", got.Model)
	assert.Equal(t, 4, got.TotalNodes)
	assert.Equal(t, 3, got.TotalEdges)
	assert.Empty(t, got.Cycle)
	assert.Equal(t, [][]string{{"sport"}, {"engine", "doors"}, {"tank"}}, levelIDs(got))
	assert.Equal(t, []string{"engine", "doors"}, got.Levels[0].Decisions[0].UsedBy)
}

func TestGraph_Focus(t *testing.T) {
	useOutput(t, "json")
	dir := testutil.SetupTestProject(t)
	path := filepath.Join(dir, "car.csv")

	out, _, err := execute(NewGraphCommand(), path, "--upstream", "tank")
	require.NoError(t, err)
	var up output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(out), &up))
	assert.Equal(t, [][]string{{"sport"}, {"engine"}, {"tank"}}, levelIDs(up))
	assert.Equal(t, 2, up.TotalEdges)

	out, _, err = execute(NewGraphCommand(), path, "--downstream", "engine")
	require.NoError(t, err)
	var down output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(out), &down))
	assert.Equal(t, [][]string{{"engine"}, {"tank"}}, levelIDs(down))

	_, _, err = execute(NewGraphCommand(), path, "--upstream", "wheels")
	assert.ErrorContains(t, err, `decision "wheels" not found`)
}

func TestGraph_Markdown(t *testing.T) {
	useOutput(t, "markdown")
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(NewGraphCommand(), filepath.Join(dir, "car.csv"))
	require.NoError(t, err)

	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Dependency Graph: car.csv")
	assert.Contains(t, out, "## Level 0 (Independent)")
	assert.Contains(t, out, "- tank\n  - depends on: engine\n")
	assert.Contains(t, out, "- **Total Dependencies:** 3")
}

func TestGraph_Cycle(t *testing.T) {
	useOutput(t, "markdown")
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(NewGraphCommand(), filepath.Join(dir, "cyclic.csv"))
	require.NoError(t, err, "cycles are reported, not rejected")
	assert.Contains(t, out, "- **Cycle:** `A -> B -> A`")
	assert.NotContains(t, out, "## Level")

	useOutput(t, "text")
	_, errOut, err := execute(NewGraphCommand(), filepath.Join(dir, "cyclic.csv"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "cycle: A -> B -> A")
}
