package rules_test

import (
	"testing"

	"github.com/leapstack-labs/dopler/internal/testutil"
	"github.com/leapstack-labs/dopler/pkg/lint"
	_ "github.com/leapstack-labs/dopler/pkg/lint/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smelly = `ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY
engine,ENUM,Which engine?,petrol|diesel,1:3,,
extras,ENUM,Which extras?,roof,2:2,,
doors,NUMBER,How many doors?,2 - 5,,,
fixed,NUMBER,,4,,,
sport,BOOLEAN,Sport package?,,,"if sport { doors = 7; select engine.petrol; deselect engine.petrol; }",
hidden,BOOLEAN,Hidden?,,,,false
tank,NUMBER,Tank size?,0 - 80,,,doors > 9
`

const cyclic = `ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY
A,BOOLEAN,Use A?,,,,B
B,BOOLEAN,Use B?,,,,A
`

// run applies a single registered rule to the model text.
func run(t *testing.T, ruleID, text string) []lint.Diagnostic {
	t.Helper()
	rule, ok := lint.GetByID(ruleID)
	require.True(t, ok, "rule %s is not registered", ruleID)
	diags, err := lint.NewAnalyzerWithRules(nil, rule).Analyze(testutil.LoadModel(t, text))
	require.NoError(t, err)
	return diags
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestRegisteredRules(t *testing.T) {
	var ids []string
	for _, r := range lint.GetAll() {
		ids = append(ids, r.ID)
		assert.NotEmpty(t, r.Name, r.ID)
		assert.NotEmpty(t, r.Description, r.ID)
		assert.NotNil(t, r.Check, r.ID)
	}
	assert.Equal(t, []string{"DM01", "DM02", "DM03", "DM04", "DM05", "DM06", "DM07", "DM08"}, ids)
	assert.Len(t, lint.GetByGroup("rule"), 3)
}

func TestDependencyCycle(t *testing.T) {
	diags := run(t, "DM01", cyclic)
	require.Len(t, diags, 1)
	assert.Equal(t, "A", diags[0].Decision)
	assert.Equal(t, "decisions depend on each other in a cycle: A -> B -> A", diags[0].Message)

	assert.Empty(t, run(t, "DM01", smelly))
}

func TestCardinalityExceedsOptions(t *testing.T) {
	diags := run(t, "DM02", smelly)
	require.Len(t, diags, 2)

	assert.Equal(t, lint.SeverityError, diags[0].Severity)
	assert.Equal(t, "extras", diags[0].Decision)
	assert.Equal(t, "cardinality 2:2 of extras needs at least 2 selections but only 1 options exist", diags[0].Message)

	assert.Equal(t, lint.SeverityWarning, diags[1].Severity)
	assert.Equal(t, "cardinality 1:3 of engine allows more selections than its 2 options", diags[1].Message)
}

func TestSingleAnswer(t *testing.T) {
	assert.Equal(t, []string{
		"extras has roof as its only possible answer",
		"fixed has 4 as its only possible answer",
	}, messages(run(t, "DM03", smelly)))
}

func TestAssignmentOutOfRange(t *testing.T) {
	diags := run(t, "DM04", smelly)
	require.Len(t, diags, 1)
	assert.Equal(t, "sport", diags[0].Decision)
	assert.Equal(t, "rule of sport sets doors = 7 outside its range 2 - 5", diags[0].Message)
}

func TestContradictoryActions(t *testing.T) {
	assert.Equal(t, []string{
		`rule of sport both applies "select engine.petrol" and "deselect engine.petrol"`,
	}, messages(run(t, "DM05", smelly)))
}

func TestMissingQuestion(t *testing.T) {
	diags := run(t, "DM06", smelly)
	require.Len(t, diags, 1)
	assert.Equal(t, "fixed", diags[0].Decision)
	assert.Equal(t, lint.SeverityInfo, diags[0].Severity)
}

func TestConstantComparison(t *testing.T) {
	assert.Equal(t, []string{
		"condition doors > 9 in tank is always false for range 2 - 5",
	}, messages(run(t, "DM07", smelly)))

	model := `ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY
n,NUMBER,N?,0 - 10,,,
a,BOOLEAN,A?,,,,n >= 0
b,BOOLEAN,B?,,,,n == 11
c,BOOLEAN,C?,,,,n < 5
`
	assert.Equal(t, []string{
		"condition n >= 0 in a is always true for range 0 - 10",
		"condition n == 11 in b is always false for range 0 - 10",
	}, messages(run(t, "DM07", model)))
}

func TestNeverVisible(t *testing.T) {
	assert.Equal(t, []string{"decision hidden is never visible"}, messages(run(t, "DM08", smelly)))
}

func TestAnalyze_AllRules(t *testing.T) {
	m := testutil.LoadModel(t, smelly)

	diags, err := lint.NewAnalyzer(nil).Analyze(m)
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	assert.True(t, lint.HasErrors(diags))
	assert.Equal(t, lint.SeverityError, diags[0].Severity)
	assert.Equal(t, "DM02", diags[0].RuleID)

	cfg := lint.NewConfig().Disable("DM02").Disable("DM04")
	diags, err = lint.NewAnalyzer(cfg).Analyze(m)
	require.NoError(t, err)
	assert.False(t, lint.HasErrors(diags))
	for _, d := range diags {
		assert.NotContains(t, []string{"DM02", "DM04"}, d.RuleID)
	}
}

func TestAnalyze_CleanModel(t *testing.T) {
	diags, err := lint.NewAnalyzer(nil).Analyze(testutil.LoadModel(t, testutil.ExampleModel))
	require.NoError(t, err)
	assert.Empty(t, diags)
}
