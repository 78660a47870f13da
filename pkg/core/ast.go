package core

import (
	"strings"
)

// ---------- Conditions ----------

// Condition is a boolean expression over decisions, used for visibility and
// as the trigger of a rule.
type Condition interface {
	String() string
	conditionNode()
}

// BoolLiteral is the constant true or false.
type BoolLiteral struct {
	Value bool
}

func (*BoolLiteral) conditionNode() {}

func (b *BoolLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// True is the always-true condition. Blank visibility resolves to it.
var True Condition = &BoolLiteral{Value: true}

// IsAlwaysTrue reports whether c is nil or the literal true.
func IsAlwaysTrue(c Condition) bool {
	if c == nil {
		return true
	}
	b, ok := c.(*BoolLiteral)
	return ok && b.Value
}

// IsTaken holds when a decision has been resolved (answered or selected).
// Both `isTaken(A)` and a bare `A` produce it.
type IsTaken struct {
	Decision string
}

func (*IsTaken) conditionNode() {}

func (c *IsTaken) String() string { return "isTaken(" + c.Decision + ")" }

// OptionSelected holds when Option of the ENUM decision Decision is selected.
type OptionSelected struct {
	Decision string
	Option   string
}

func (*OptionSelected) conditionNode() {}

func (c *OptionSelected) String() string { return c.Decision + "." + c.Option }

// Not negates its operand.
type Not struct {
	Operand Condition
}

func (*Not) conditionNode() {}

func (c *Not) String() string { return "!" + wrap(c.Operand) }

// And is a conjunction.
type And struct {
	Left  Condition
	Right Condition
}

func (*And) conditionNode() {}

func (c *And) String() string { return wrap(c.Left) + " && " + wrap(c.Right) }

// Or is a disjunction.
type Or struct {
	Left  Condition
	Right Condition
}

func (*Or) conditionNode() {}

func (c *Or) String() string { return wrap(c.Left) + " || " + wrap(c.Right) }

// Compare tests the value of a decision against a literal.
type Compare struct {
	Decision string
	Op       CompareOp
	Value    Literal
}

func (*Compare) conditionNode() {}

func (c *Compare) String() string {
	return c.Decision + " " + c.Op.String() + " " + c.Value.String()
}

// CompareOp is a comparison operator.
type CompareOp uint8

// Comparison operators.
const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Ordered reports whether the operator needs an ordered (numeric) operand.
func (op CompareOp) Ordered() bool {
	return op >= OpLt
}

// wrap parenthesizes compound operands so String output re-parses to the same tree.
func wrap(c Condition) string {
	switch c.(type) {
	case *And, *Or:
		return "(" + c.String() + ")"
	default:
		return c.String()
	}
}

// ---------- Literals ----------

// LiteralKind is the kind of a literal value.
type LiteralKind uint8

// Literal kinds.
const (
	LiteralBool LiteralKind = iota
	LiteralNumber
	LiteralString
)

// Literal is a constant value in a comparison or assignment.
type Literal struct {
	Kind   LiteralKind
	Bool   bool
	Number float64
	Text   string
}

// BoolValue returns a boolean literal.
func BoolValue(v bool) Literal { return Literal{Kind: LiteralBool, Bool: v} }

// NumberValue returns a numeric literal.
func NumberValue(v float64) Literal { return Literal{Kind: LiteralNumber, Number: v} }

// StringValue returns a string literal.
func StringValue(v string) Literal { return Literal{Kind: LiteralString, Text: v} }

func (l Literal) String() string {
	switch l.Kind {
	case LiteralBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LiteralNumber:
		return formatNumber(l.Number)
	default:
		return "'" + strings.ReplaceAll(l.Text, "'", "''") + "'"
	}
}

// ---------- Actions ----------

// Action is an effect a rule applies once its condition holds.
type Action interface {
	// Target returns the id of the decision the action changes.
	Target() string
	String() string
	actionNode()
}

// SetValue assigns a literal to a decision: `B = true;`.
type SetValue struct {
	Decision string
	Value    Literal
}

func (*SetValue) actionNode() {}

// Target implements Action.
func (a *SetValue) Target() string { return a.Decision }

func (a *SetValue) String() string { return a.Decision + " = " + a.Value.String() }

// Select selects a decision, or one option of an ENUM decision.
type Select struct {
	Decision string
	Option   string // empty selects the decision itself
}

func (*Select) actionNode() {}

// Target implements Action.
func (a *Select) Target() string { return a.Decision }

func (a *Select) String() string { return "select " + qualified(a.Decision, a.Option) }

// Deselect is the inverse of Select.
type Deselect struct {
	Decision string
	Option   string
}

func (*Deselect) actionNode() {}

// Target implements Action.
func (a *Deselect) Target() string { return a.Decision }

func (a *Deselect) String() string { return "deselect " + qualified(a.Decision, a.Option) }

// Allow re-enables an option of an ENUM decision.
type Allow struct {
	Decision string
	Option   string
}

func (*Allow) actionNode() {}

// Target implements Action.
func (a *Allow) Target() string { return a.Decision }

func (a *Allow) String() string { return "allow(" + qualified(a.Decision, a.Option) + ")" }

// Disallow forbids an option of an ENUM decision.
type Disallow struct {
	Decision string
	Option   string
}

func (*Disallow) actionNode() {}

// Target implements Action.
func (a *Disallow) Target() string { return a.Decision }

func (a *Disallow) String() string { return "disAllow(" + qualified(a.Decision, a.Option) + ")" }

func qualified(decision, option string) string {
	if option == "" {
		return decision
	}
	return decision + "." + option
}

// ---------- Rules ----------

// Rule applies Actions whenever Condition holds.
type Rule struct {
	Condition Condition
	Actions   []Action
}

// String renders the rule in canonical DOPLER form. Two rules with the same
// canonical form are the same rule.
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString("if (")
	if r.Condition != nil {
		b.WriteString(r.Condition.String())
	} else {
		b.WriteString("true")
	}
	b.WriteString(") {")
	for _, a := range r.Actions {
		b.WriteString(" ")
		b.WriteString(a.String())
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

// References returns the decision ids the rule mentions, condition first,
// without duplicates.
func (r *Rule) References() []string {
	refs := References(r.Condition)
	seen := make(map[string]struct{}, len(refs)+len(r.Actions))
	for _, id := range refs {
		seen[id] = struct{}{}
	}
	for _, a := range r.Actions {
		if _, ok := seen[a.Target()]; !ok {
			seen[a.Target()] = struct{}{}
			refs = append(refs, a.Target())
		}
	}
	return refs
}

// WalkCondition calls fn for c and each of its sub-conditions, depth first.
// Returning false from fn skips the children of that node.
func WalkCondition(c Condition, fn func(Condition) bool) {
	if c == nil || !fn(c) {
		return
	}
	switch n := c.(type) {
	case *Not:
		WalkCondition(n.Operand, fn)
	case *And:
		WalkCondition(n.Left, fn)
		WalkCondition(n.Right, fn)
	case *Or:
		WalkCondition(n.Left, fn)
		WalkCondition(n.Right, fn)
	}
}

// References returns the decision ids a condition mentions in order of
// first appearance.
func References(c Condition) []string {
	var refs []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			refs = append(refs, id)
		}
	}
	WalkCondition(c, func(n Condition) bool {
		switch n := n.(type) {
		case *IsTaken:
			add(n.Decision)
		case *OptionSelected:
			add(n.Decision)
		case *Compare:
			add(n.Decision)
		}
		return true
	})
	return refs
}
