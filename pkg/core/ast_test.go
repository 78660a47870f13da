package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition_String(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want string
	}{
		{name: "true", cond: True, want: "true"},
		{name: "is taken", cond: &IsTaken{Decision: "A"}, want: "isTaken(A)"},
		{name: "option", cond: &OptionSelected{Decision: "Color", Option: "red"}, want: "Color.red"},
		{name: "not", cond: &Not{Operand: &IsTaken{Decision: "A"}}, want: "!isTaken(A)"},
		{
			name: "nested",
			cond: &And{
				Left:  &Or{Left: &IsTaken{Decision: "A"}, Right: &IsTaken{Decision: "B"}},
				Right: &Not{Operand: &And{Left: &IsTaken{Decision: "C"}, Right: True}},
			},
			want: "(isTaken(A) || isTaken(B)) && !(isTaken(C) && true)",
		},
		{
			name: "compare",
			cond: &Compare{Decision: "Size", Op: OpGe, Value: NumberValue(2.5)},
			want: "Size >= 2.5",
		},
		{
			name: "string literal escapes quote",
			cond: &Compare{Decision: "Name", Op: OpEq, Value: StringValue("it's")},
			want: "Name == 'it''s'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.String())
		})
	}
}

func TestReferences(t *testing.T) {
	cond := &Or{
		Left: &And{
			Left:  &IsTaken{Decision: "A"},
			Right: &OptionSelected{Decision: "B", Option: "x"},
		},
		Right: &Not{Operand: &Compare{Decision: "A", Op: OpEq, Value: BoolValue(true)}},
	}
	assert.Equal(t, []string{"A", "B"}, References(cond))
	assert.Empty(t, References(True))
	assert.Empty(t, References(nil))
}

func TestRule_StringAndReferences(t *testing.T) {
	r := &Rule{
		Condition: &IsTaken{Decision: "A"},
		Actions: []Action{
			&Select{Decision: "B", Option: "y"},
			&Disallow{Decision: "C", Option: "z"},
			&SetValue{Decision: "A", Value: BoolValue(false)},
		},
	}

	assert.Equal(t, "if (isTaken(A)) { select B.y; disAllow(C.z); A = false; }", r.String())
	assert.Equal(t, []string{"A", "B", "C"}, r.References())
}

func TestIsAlwaysTrue(t *testing.T) {
	assert.True(t, IsAlwaysTrue(nil))
	assert.True(t, IsAlwaysTrue(True))
	assert.True(t, IsAlwaysTrue(&BoolLiteral{Value: true}))
	assert.False(t, IsAlwaysTrue(&BoolLiteral{Value: false}))
	assert.False(t, IsAlwaysTrue(&IsTaken{Decision: "A"}))
}
