package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/dopler/pkg/core"
	"golang.org/x/text/cases"
)

// Column names of the tabular format.
const (
	ColumnID          = "ID"
	ColumnType        = "TYPE"
	ColumnQuestion    = "QUESTION"
	ColumnRange       = "RANGE"
	ColumnCardinality = "CARDINALITY"
	ColumnRules       = "RULES"
	ColumnVisibility  = "VISIBILITY"
)

// Columns lists the required columns in canonical order.
var Columns = []string{
	ColumnID, ColumnType, ColumnQuestion, ColumnRange, ColumnCardinality, ColumnRules, ColumnVisibility,
}

// columnAliases maps folded header names to canonical columns. The DOPLER
// tool exports rules and visibility under their own headings.
var columnAliases = map[string]string{
	"constraint/rule":     ColumnRules,
	"constraints/rules":   ColumnRules,
	"visible/relevant if": ColumnVisibility,
}

// Record is one materialized data row.
type Record struct {
	Row         int // 1-based data row, header excluded
	ID          string
	Type        string
	Question    string
	Range       string
	Cardinality string
	Rules       string
	Visibility  string
}

// blank reports whether every field of the row is empty after trimming.
func (r Record) blank() bool {
	for _, v := range []string{r.ID, r.Type, r.Question, r.Range, r.Cardinality, r.Rules, r.Visibility} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRecords materializes the whole input into records. A zero delimiter
// is detected from the header line.
func ReadRecords(data []byte, delimiter rune) ([]Record, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if delimiter == 0 {
		delimiter = DetectDelimiter(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &core.LoadError{Kind: core.ErrMalformedRecord, Expected: "a header row", Err: err}
	}

	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for row := 1; ; row++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &core.LoadError{Kind: core.ErrMalformedRecord, Row: row, Err: err}
		}

		get := func(column string) string {
			if i := index[column]; i < len(fields) {
				return fields[i]
			}
			return ""
		}
		records = append(records, Record{
			Row:         row,
			ID:          get(ColumnID),
			Type:        get(ColumnType),
			Question:    get(ColumnQuestion),
			Range:       get(ColumnRange),
			Cardinality: get(ColumnCardinality),
			Rules:       get(ColumnRules),
			Visibility:  get(ColumnVisibility),
		})
	}
	return records, nil
}

// headerIndex maps each canonical column to its field index.
func headerIndex(header []string) (map[string]int, error) {
	caser := cases.Fold()
	canonical := make(map[string]string, len(Columns)+len(columnAliases))
	for _, c := range Columns {
		canonical[caser.String(c)] = c
	}
	for alias, c := range columnAliases {
		canonical[alias] = c
	}

	index := make(map[string]int, len(Columns))
	for i, h := range header {
		c, ok := canonical[caser.String(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := index[c]; dup {
			return nil, &core.LoadError{Kind: core.ErrMalformedRecord, Column: c, Value: h, Expected: "each column once"}
		}
		index[c] = i
	}

	var missing []string
	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &core.LoadError{
			Kind:     core.ErrMalformedRecord,
			Value:    strings.Join(header, ","),
			Expected: fmt.Sprintf("columns %s", strings.Join(missing, ", ")),
			Err:      fmt.Errorf("missing %d required column(s)", len(missing)),
		}
	}
	return index, nil
}

// DetectDelimiter picks ';' when the header line has more semicolons than
// commas, otherwise ','.
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
