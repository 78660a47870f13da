package output_test

import (
	"encoding/json"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dopler/internal/cli/output"
	"github.com/leapstack-labs/dopler/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMode(t *testing.T) {
	tests := map[string]output.OutputMode{
		"":         output.ModeAuto,
		"auto":     output.ModeAuto,
		"text":     output.ModeText,
		"markdown": output.ModeMarkdown,
		"json":     output.ModeJSON,
		"yaml":     output.ModeYAML,
		"html":     output.ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, output.Mode(in), in)
	}
}

func TestEffectiveMode(t *testing.T) {
	assert.Equal(t, output.ModeText, testutil.NewTestRenderer(output.ModeAuto, true).EffectiveMode())
	assert.Equal(t, output.ModeMarkdown, testutil.NewTestRendererAuto().EffectiveMode())
	assert.Equal(t, output.ModeText, testutil.NewTestRendererText().EffectiveMode())
	assert.Equal(t, output.ModeJSON, testutil.NewTestRenderer(output.ModeJSON, true).EffectiveMode())
}

func TestRenderer_NoANSIWithoutTTY(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)

	tr.Header(1, "Decisions")
	tr.Success("loaded")
	tr.Error("failed")
	tr.Warning("careful")

	testutil.AssertNoANSI(t, tr.Output()+tr.ErrorOutput())
	testutil.AssertContains(t, tr.Output(), "Decisions")
	testutil.AssertContains(t, tr.Output(), "✓ loaded")
	testutil.AssertContains(t, tr.ErrorOutput(), "✗ failed")
	testutil.AssertContains(t, tr.ErrorOutput(), "! careful")
	testutil.AssertNotContains(t, tr.Output(), "failed")

	tr.Reset()
	assert.Empty(t, tr.Output())
	assert.Empty(t, tr.ErrorOutput())
}

func TestRenderer_Structured(t *testing.T) {
	payload := output.FailureInfo{File: "car.csv", Error: "boom"}

	tr := testutil.NewTestRendererJSON()
	ok, err := tr.Structured(payload)
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertOutputMode(t, tr, output.ModeJSON)
	var gotJSON output.FailureInfo
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &gotJSON))
	assert.Equal(t, payload, gotJSON)

	tr = testutil.NewTestRendererYAML()
	ok, err = tr.Structured(payload)
	require.NoError(t, err)
	assert.True(t, ok)
	testutil.AssertOutputMode(t, tr, output.ModeYAML)
	assert.Equal(t, "file: car.csv\nerror: boom\n", tr.Output())
	var gotYAML output.FailureInfo
	require.NoError(t, yaml.Unmarshal(tr.Out.Bytes(), &gotYAML))
	assert.Equal(t, payload, gotYAML)

	tr = testutil.NewTestRendererMarkdown()
	ok, err = tr.Structured(payload)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, tr.Output())
}

func TestRenderer_MarkdownMode(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	tr.Header(2, "Decisions")
	tr.Success("loaded")
	tr.Warning("careful")

	testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
	testutil.AssertValidMarkdown(t, tr.Output())
	testutil.AssertContains(t, tr.Output(), "Decisions")
}

func TestRenderer_Table(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	tr.Table(table.Row{"ID", "TYPE"}, []table.Row{{"A", "BOOLEAN"}, {"B", "ENUM"}})

	testutil.AssertOutputMode(t, tr, output.ModeText)
	testutil.AssertContains(t, tr.Output(), "BOOLEAN")
	testutil.AssertContains(t, tr.Output(), "┌")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "## Level 1", output.FormatHeader(2, "Level 1"))
	assert.Equal(t, "# x", output.FormatHeader(0, "x"))
	assert.Equal(t, "- **Rules:** 3", output.FormatKeyValue("Rules", "3"))
	assert.Equal(t, "`A`", output.FormatCode("A"))
	assert.Equal(t, "```csv\na,b\n```", output.FormatCodeBlock("csv", "a,b\n"))
	assert.Equal(t,
		"| ID | RANGE |\n| --- | --- |\n| B | x\\|y |",
		output.FormatTable([]string{"ID", "RANGE"}, [][]string{{"B", "x|y"}}))
}
