package parser_test

import (
	"testing"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModel builds A:BOOLEAN, B:ENUM(x|y), N:NUMBER(0-10), S:STRING and
// verify_motif:BOOLEAN.
func newTestModel(t *testing.T) *core.DecisionModel {
	t.Helper()

	f := core.NewFactory()
	m := f.NewModel("test")

	b := f.NewEnumDecision("B")
	opts, err := f.NewEnumOptions([]string{"x", "y"})
	require.NoError(t, err)
	require.NoError(t, b.SetRange(opts))

	n := f.NewNumberDecision("N")
	require.NoError(t, n.SetRange(core.NumberRange{Low: 0, High: 10}))

	for _, d := range []*core.Decision{
		f.NewBooleanDecision("A"), b, n, f.NewStringDecision("S"), f.NewBooleanDecision("verify_motif"),
	} {
		require.NoError(t, m.Add(d))
	}
	return m
}

// ---------- SplitClauses ----------

func TestSplitClauses(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "trailing if",
			text: "select y if A",
			want: []string{"select y if A"},
		},
		{
			name: "identifier containing if",
			text: "verify_motif = true if A; select y if verify_motif",
			want: []string{"verify_motif = true if A", "select y if verify_motif"},
		},
		{
			name: "leading if with block",
			text: "if A { B = x; select y; } deselect y if !A",
			want: []string{"if A { B = x; select y; }", "deselect y if !A"},
		},
		{
			name: "leading if without block",
			text: "if N > 3 select B.x\nif S == 'if' A = true",
			want: []string{"if N > 3 select B.x", "if S == 'if' A = true"},
		},
		{
			name: "several actions before if",
			text: "A = true; S = 'on' if isTaken(N);",
			want: []string{"A = true; S = 'on' if isTaken(N)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.SplitClauses(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitClauses_Blank(t *testing.T) {
	for _, text := range []string{"", "   ", " ;; "} {
		got, err := parser.SplitClauses(text)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestSplitClauses_Malformed(t *testing.T) {
	for _, text := range []string{
		"select y",
		"select y if",
		"if A {",
		"if A { }",
		"if { select y }",
		"select if A",
		"A == true if B",
		"select y if A &",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := parser.SplitClauses(text)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMalformedExpression)
		})
	}
}

// ---------- ConditionParser ----------

func TestConditionParser_Blank(t *testing.T) {
	cp := parser.NewConditionParser(newTestModel(t))

	for _, text := range []string{"", "  \t"} {
		cond, err := cp.Parse(text)
		require.NoError(t, err)
		assert.Same(t, core.True, cond)
	}
}

func TestConditionParser_Parse(t *testing.T) {
	cp := parser.NewConditionParser(newTestModel(t))

	tests := []struct {
		text string
		want string
	}{
		{text: "A", want: "isTaken(A)"},
		{text: "isTaken(A)", want: "isTaken(A)"},
		{text: "true", want: "true"},
		{text: "isTaken(A) && !B.x", want: "isTaken(A) && !B.x"},
		{text: "A || N > 3 && S == 'hi'", want: "isTaken(A) || (N > 3 && S == 'hi')"},
		{text: "(A || verify_motif) && B == y", want: "(isTaken(A) || isTaken(verify_motif)) && B == 'y'"},
		{text: "N >= -2.5", want: "N >= -2.5"},
		{text: "!!A", want: "!!isTaken(A)"},
		{text: "a == false", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cond, err := cp.Parse(tt.text)
			if tt.want == "" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cond.String())
		})
	}
}

func TestConditionParser_Structure(t *testing.T) {
	cp := parser.NewConditionParser(newTestModel(t))

	cond, err := cp.Parse("A && B == y")
	require.NoError(t, err)

	and, ok := cond.(*core.And)
	require.True(t, ok)
	assert.Equal(t, &core.IsTaken{Decision: "A"}, and.Left)
	assert.Equal(t, &core.Compare{Decision: "B", Op: core.OpEq, Value: core.StringValue("y")}, and.Right)
}

func TestConditionParser_Errors(t *testing.T) {
	cp := parser.NewConditionParser(newTestModel(t))

	tests := []struct {
		text    string
		wantErr error
	}{
		{text: "Z", wantErr: core.ErrUnresolvedReference},
		{text: "isTaken(Z)", wantErr: core.ErrUnresolvedReference},
		{text: "B.z", wantErr: core.ErrUnresolvedReference},
		{text: "A.x", wantErr: core.ErrUnresolvedReference},
		{text: "B == z", wantErr: core.ErrUnresolvedReference},
		{text: "A && Z", wantErr: core.ErrUnresolvedReference},
		{text: "A == 3", wantErr: core.ErrMalformedExpression},
		{text: "S > 'a'", wantErr: core.ErrMalformedExpression},
		{text: "N == 'ten'", wantErr: core.ErrMalformedExpression},
		{text: "B < x", wantErr: core.ErrMalformedExpression},
		{text: "A &&", wantErr: core.ErrMalformedExpression},
		{text: "(A", wantErr: core.ErrMalformedExpression},
		{text: "A B", wantErr: core.ErrMalformedExpression},
		{text: "B.x == y", wantErr: core.ErrMalformedExpression},
		{text: "A & B", wantErr: core.ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := cp.Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConditionParser_QuotedReferences(t *testing.T) {
	f := core.NewFactory()
	m := f.NewModel("quoted")
	hyphen := f.NewNumberDecision("A-1")
	require.NoError(t, hyphen.SetRange(core.NumberRange{Low: 0, High: 5}))
	require.NoError(t, m.Add(f.NewBooleanDecision("Allow")))
	require.NoError(t, m.Add(hyphen))
	cp := parser.NewConditionParser(m)

	cond, err := cp.Parse(`"Allow" && "A-1" > 2`)
	require.NoError(t, err)
	and, ok := cond.(*core.And)
	require.True(t, ok)
	assert.Equal(t, &core.IsTaken{Decision: "Allow"}, and.Left)
	assert.Equal(t, &core.Compare{Decision: "A-1", Op: core.OpGt, Value: core.NumberValue(2)}, and.Right)

	cond, err = cp.Parse(`isTaken("A-1")`)
	require.NoError(t, err)
	assert.Equal(t, &core.IsTaken{Decision: "A-1"}, cond)

	// Keywords match regardless of case, so these names need quotes.
	_, err = cp.Parse("Allow")
	assert.ErrorIs(t, err, core.ErrMalformedExpression)
	_, err = cp.Parse("A-1 > 2")
	assert.Error(t, err)

	owner, _ := m.Get("Allow")
	rules, err := parser.NewRulesParser(m).Parse(owner, []string{`select "A-1" if "Allow"`})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, &core.IsTaken{Decision: "Allow"}, rules[0].Condition)
	assert.Equal(t, []core.Action{&core.Select{Decision: "A-1"}}, rules[0].Actions)
}

func TestConditionParser_ErrorPosition(t *testing.T) {
	cp := parser.NewConditionParser(newTestModel(t))

	_, err := cp.Parse("A && && B")
	require.Error(t, err)

	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Pos.Line)
	assert.Equal(t, 6, parseErr.Pos.Column)
}

// ---------- RulesParser ----------

func TestRulesParser_OwnerOptionShorthand(t *testing.T) {
	m := newTestModel(t)
	owner, _ := m.Get("B")

	rules, err := parser.NewRulesParser(m).Parse(owner, []string{"select y if A"})
	require.NoError(t, err)
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.Equal(t, &core.IsTaken{Decision: "A"}, rule.Condition)
	assert.Equal(t, []core.Action{&core.Select{Decision: "B", Option: "y"}}, rule.Actions)
	assert.Contains(t, rule.References(), "A")
}

func TestRulesParser_Parse(t *testing.T) {
	m := newTestModel(t)
	owner, _ := m.Get("A")
	enumOwner, _ := m.Get("B")

	tests := []struct {
		name     string
		owner    *core.Decision
		fragment string
		want     string
	}{
		{
			name:     "block",
			owner:    owner,
			fragment: "if N > 3 { select B.x; S = 'big'; }",
			want:     "if (N > 3) { select B.x; S = 'big'; }",
		},
		{
			name:     "trailing if with several actions",
			owner:    owner,
			fragment: "A = true; deselect B.y if verify_motif",
			want:     "if (isTaken(verify_motif)) { A = true; deselect B.y; }",
		},
		{
			name:     "select decision",
			owner:    owner,
			fragment: "select S if A",
			want:     "if (isTaken(A)) { select S; }",
		},
		{
			name:     "allow owner option",
			owner:    enumOwner,
			fragment: "if !A allow(x)",
			want:     "if (!isTaken(A)) { allow(B.x); }",
		},
		{
			name:     "disallow qualified option",
			owner:    owner,
			fragment: "disAllow(B.y) if N <= 1",
			want:     "if (N <= 1) { disAllow(B.y); }",
		},
		{
			name:     "assign enum option",
			owner:    owner,
			fragment: "B = x if A",
			want:     "if (isTaken(A)) { B = 'x'; }",
		},
		{
			name:     "nil owner",
			owner:    nil,
			fragment: "N = -1 if A",
			want:     "if (isTaken(A)) { N = -1; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := parser.NewRulesParser(m).Parse(tt.owner, []string{tt.fragment})
			require.NoError(t, err)
			require.Len(t, rules, 1)
			assert.Equal(t, tt.want, rules[0].String())
		})
	}
}

func TestRulesParser_PreservesOrder(t *testing.T) {
	m := newTestModel(t)
	owner, _ := m.Get("B")

	fragments, err := parser.SplitClauses("select y if A; deselect y if !A; if N > 5 { select x; }")
	require.NoError(t, err)

	rules, err := parser.NewRulesParser(m).Parse(owner, fragments)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "if (isTaken(A)) { select B.y; }", rules[0].String())
	assert.Equal(t, "if (!isTaken(A)) { deselect B.y; }", rules[1].String())
	assert.Equal(t, "if (N > 5) { select B.x; }", rules[2].String())
}

func TestRulesParser_Errors(t *testing.T) {
	m := newTestModel(t)
	owner, _ := m.Get("A")
	enumOwner, _ := m.Get("B")

	tests := []struct {
		name     string
		owner    *core.Decision
		fragment string
		wantErr  error
	}{
		{name: "unknown target", owner: owner, fragment: "select Q if A", wantErr: core.ErrUnresolvedReference},
		{name: "unknown condition", owner: owner, fragment: "select S if Q", wantErr: core.ErrUnresolvedReference},
		{name: "shorthand needs enum owner", owner: owner, fragment: "select y if A", wantErr: core.ErrUnresolvedReference},
		{name: "unknown option", owner: enumOwner, fragment: "select z if A", wantErr: core.ErrUnresolvedReference},
		{name: "assign unknown option", owner: owner, fragment: "B = z if A", wantErr: core.ErrUnresolvedReference},
		{name: "allow needs option", owner: owner, fragment: "allow(S) if A", wantErr: core.ErrUnresolvedReference},
		{name: "type mismatch", owner: owner, fragment: "A = 3 if N > 1", wantErr: core.ErrMalformedExpression},
		{name: "assign option ref", owner: owner, fragment: "B.x = true if A", wantErr: core.ErrMalformedExpression},
		{name: "two clauses in one fragment", owner: owner, fragment: "select S if A select S if A", wantErr: core.ErrMalformedExpression},
		{name: "empty fragment", owner: owner, fragment: "", wantErr: core.ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.NewRulesParser(m).Parse(tt.owner, []string{tt.fragment})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
