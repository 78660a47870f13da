package lint_test

import (
	"testing"

	"github.com/leapstack-labs/dopler/internal/testutil"
	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// everyDecision reports one finding per decision.
var everyDecision = lint.RuleDef{
	ID:       "XX01",
	Name:     "every-decision",
	Group:    "test",
	Severity: lint.SeverityHint,
	Check: func(ctx *lint.Context) []lint.Diagnostic {
		var diags []lint.Diagnostic
		for _, id := range ctx.Model.IDs() {
			diags = append(diags, lint.Diagnostic{Severity: lint.SeverityHint, Message: id, Decision: id})
		}
		return diags
	},
}

// roots reports graph roots as errors.
var roots = lint.RuleDef{
	ID:       "XX02",
	Name:     "roots",
	Group:    "test",
	Severity: lint.SeverityError,
	Check: func(ctx *lint.Context) []lint.Diagnostic {
		var diags []lint.Diagnostic
		for _, id := range ctx.Graph.GetRoots() {
			diags = append(diags, lint.Diagnostic{RuleID: "XX02", Severity: lint.SeverityError, Message: "root " + id})
		}
		return diags
	},
}

func TestAnalyzer_OrdersBySeverity(t *testing.T) {
	m := testutil.LoadModel(t, testutil.ExampleModel)

	diags, err := lint.NewAnalyzerWithRules(nil, everyDecision, roots).Analyze(m)
	require.NoError(t, err)
	require.Len(t, diags, 3)

	assert.Equal(t, "root A", diags[0].Message)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)
	assert.Equal(t, "XX01", diags[1].RuleID, "missing rule IDs are filled in")
	assert.Equal(t, []string{"A", "B"}, []string{diags[1].Message, diags[2].Message})
	assert.True(t, lint.HasErrors(diags))
}

func TestAnalyzer_Config(t *testing.T) {
	m := testutil.LoadModel(t, testutil.ExampleModel)

	cfg := lint.NewConfig().Disable("XX02").SetSeverity("XX01", lint.SeverityWarning)
	diags, err := lint.NewAnalyzerWithRules(cfg, everyDecision, roots).Analyze(m)
	require.NoError(t, err)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, "XX01", d.RuleID)
		assert.Equal(t, lint.SeverityWarning, d.Severity)
	}
	assert.False(t, lint.HasErrors(diags))
}

func TestAnalyzer_NilModel(t *testing.T) {
	diags, err := lint.NewAnalyzerWithRules(nil, roots).Analyze(nil)
	require.NoError(t, err)
	assert.Nil(t, diags)
}

func TestAnalyzer_UnresolvedReference(t *testing.T) {
	f := core.NewFactory()
	m := f.NewModel("dangling")
	a := f.NewBooleanDecision("A")
	a.SetVisibility(&core.IsTaken{Decision: "ghost"})
	require.NoError(t, m.Add(a))

	diags, err := lint.NewAnalyzerWithRules(nil, everyDecision).Analyze(m)
	assert.ErrorContains(t, err, "build graph of dangling")
	assert.ErrorContains(t, err, `node "ghost" does not exist`)
	assert.Nil(t, diags)
}

func TestConfigFrom(t *testing.T) {
	cfg, err := lint.ConfigFrom([]string{"DM06"}, map[string]string{"DM03": "Warning"})
	require.NoError(t, err)

	assert.True(t, cfg.IsDisabled("DM06"))
	assert.False(t, cfg.IsDisabled("DM03"))
	assert.Equal(t, lint.SeverityWarning, cfg.GetSeverity("DM03", lint.SeverityHint))
	assert.Equal(t, lint.SeverityHint, cfg.GetSeverity("DM07", lint.SeverityHint))

	_, err = lint.ConfigFrom(nil, map[string]string{"DM03": "loud"})
	assert.ErrorContains(t, err, `rule DM03: unknown severity "loud"`)

	var nilCfg *lint.Config
	assert.False(t, nilCfg.IsDisabled("DM01"))
	assert.Equal(t, lint.SeverityInfo, nilCfg.GetSeverity("DM01", lint.SeverityInfo))
}

func TestSeverity(t *testing.T) {
	for _, s := range []lint.Severity{lint.SeverityError, lint.SeverityWarning, lint.SeverityInfo, lint.SeverityHint} {
		parsed, ok := lint.ParseSeverity(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := lint.ParseSeverity("fatal")
	assert.False(t, ok)
	assert.Equal(t, "unknown", lint.Severity(42).String())
}

func TestRuleDef_Info(t *testing.T) {
	info := roots.Info()
	assert.Equal(t, "XX02", info.ID)
	assert.Equal(t, "error", info.DefaultSeverity)
	assert.Equal(t, "test", info.Group)
}
