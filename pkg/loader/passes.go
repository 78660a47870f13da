package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/parser"
)

// phase is the state of a load. Each phase is entered exactly once, in order.
type phase uint8

const (
	phaseStructural phase = iota + 1
	phaseResolution
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseStructural:
		return "structural"
	case phaseResolution:
		return "resolution"
	case phaseDone:
		return "done"
	default:
		return "pending"
	}
}

// run is a single load in progress. It owns the model until it returns.
type run struct {
	factory *core.Factory
	model   *core.DecisionModel
	logger  *slog.Logger
	phase   phase
}

func newRun(factory *core.Factory, model *core.DecisionModel, logger *slog.Logger) *run {
	return &run{factory: factory, model: model, logger: logger}
}

// execute runs the structural pass and then the resolution pass.
func (r *run) execute(records []Record) error {
	r.phase = phaseStructural
	for _, rec := range records {
		if rec.blank() {
			r.logger.Debug("skipping blank row", "row", rec.Row)
			continue
		}
		if err := r.structural(rec); err != nil {
			return err
		}
	}
	r.logger.Debug("structural pass complete", "decisions", r.model.Size())

	r.phase = phaseResolution
	rules := parser.NewRulesParser(r.model)
	conditions := parser.NewConditionParser(r.model)
	total := 0
	for _, rec := range records {
		if rec.blank() {
			continue
		}
		n, err := r.resolve(rec, rules, conditions)
		if err != nil {
			return err
		}
		total += n
	}
	r.logger.Debug("resolution pass complete", "rules", total)

	r.phase = phaseDone
	return nil
}

// ---------- Structural pass ----------

// structural builds and registers the decision of one row.
func (r *run) structural(rec Record) error {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return &core.LoadError{
			Kind:     core.ErrMalformedRecord,
			Row:      rec.Row,
			Column:   ColumnID,
			Expected: "a non-blank decision id",
		}
	}

	d, err := r.factory.NewDecision(strings.TrimSpace(rec.Type), id)
	if err != nil {
		return enrich(err, rec.Row, id, ColumnType, rec.Type)
	}
	d.Question = strings.TrimSpace(rec.Question)

	if text := strings.TrimSpace(rec.Range); text != "" {
		rng, err := r.buildRange(d, text)
		if err != nil {
			return enrich(err, rec.Row, id, ColumnRange, text)
		}
		if err := d.SetRange(rng); err != nil {
			return enrich(err, rec.Row, id, ColumnRange, text)
		}
	}

	if text := strings.TrimSpace(rec.Cardinality); text != "" {
		if err := r.applyCardinality(d, text); err != nil {
			return enrich(err, rec.Row, id, ColumnCardinality, text)
		}
	}

	if err := r.model.Add(d); err != nil {
		return enrich(err, rec.Row, id, ColumnID, id)
	}
	return nil
}

// buildRange parses a RANGE cell according to what the decision's type can carry.
func (r *run) buildRange(d *core.Decision, text string) (core.Range, error) {
	caps := core.CapabilitiesOf(d.Type())
	switch caps.Range {
	case core.RangeNumeric:
		return r.factory.NewNumberRange(splitNumberRange(text))
	case core.RangeOptions:
		return r.factory.NewEnumOptions(splitTrim(text, "|"))
	case core.RangeNone:
		return nil, &core.LoadError{
			Kind:     core.ErrUnsupportedRangeOrCardinality,
			Value:    text,
			Expected: fmt.Sprintf("no RANGE on a %s decision", d.Type()),
		}
	default:
		panic(fmt.Sprintf("loader: unhandled range kind %v", caps.Range))
	}
}

// applyCardinality parses "min:max" onto an ENUM decision.
func (r *run) applyCardinality(d *core.Decision, text string) error {
	tokens := splitTrim(text, ":")
	if !core.CapabilitiesOf(d.Type()).Cardinality || len(tokens) != 2 {
		return &core.LoadError{
			Kind:     core.ErrUnsupportedRangeOrCardinality,
			Value:    text,
			Expected: "min:max on an ENUM decision",
		}
	}

	bounds := make([]int, 2)
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return &core.LoadError{
				Kind:     core.ErrUnsupportedRangeOrCardinality,
				Value:    tok,
				Expected: "a non-negative integer",
				Err:      err,
			}
		}
		bounds[i] = n
	}

	c, err := r.factory.NewCardinality(bounds[0], bounds[1])
	if err != nil {
		return err
	}
	return d.SetCardinality(c)
}

// ---------- Resolution pass ----------

// resolve attaches the rules and visibility of one row and returns the number
// of rules added.
func (r *run) resolve(rec Record, rules *parser.RulesParser, conditions *parser.ConditionParser) (int, error) {
	id := strings.TrimSpace(rec.ID)
	d, err := r.model.Resolve(id)
	if err != nil {
		return 0, enrich(err, rec.Row, id, ColumnID, id)
	}

	added := 0
	if strings.TrimSpace(rec.Rules) != "" {
		fragments, err := parser.SplitClauses(rec.Rules)
		if err != nil {
			return 0, enrich(err, rec.Row, id, ColumnRules, rec.Rules)
		}
		for _, fragment := range fragments {
			parsed, err := rules.Parse(d, []string{fragment})
			if err != nil {
				return 0, enrich(err, rec.Row, id, ColumnRules, fragment)
			}
			before := len(d.Rules())
			d.AddRules(parsed...)
			added += len(d.Rules()) - before
		}
	}

	visibility, err := conditions.Parse(rec.Visibility)
	if err != nil {
		return 0, enrich(err, rec.Row, id, ColumnVisibility, rec.Visibility)
	}
	d.SetVisibility(visibility)

	return added, nil
}

// ---------- Cell splitting ----------

// splitTrim splits s on sep, trims every part and drops the empty ones.
func splitTrim(s, sep string) []string {
	return compact(strings.Split(s, sep))
}

// compact trims every part and drops the empty ones, in place.
func compact(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitNumberRange splits "low - high" on its separating hyphen. Either bound
// may be omitted. A hyphen directly followed by a digit is a sign when it
// starts the cell, follows another hyphen or follows an exponent marker, so
// "-5 - 5" and "1e-3 - 2" split into two bounds.
func splitNumberRange(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		if isSign(s, i) {
			continue
		}
		parts = append(parts, s[start:i])
		start = i + 1
	}
	parts = append(parts, s[start:])
	return compact(parts)
}

func isSign(s string, i int) bool {
	if i+1 >= len(s) || !(isDigit(s[i+1]) || s[i+1] == '.') {
		return false
	}
	prev := strings.TrimRight(s[:i], " \t")
	if prev == "" {
		return true
	}
	switch prev[len(prev)-1] {
	case '-', 'e', 'E':
		return true
	default:
		return false
	}
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
