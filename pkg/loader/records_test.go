package loader

import (
	"testing"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	data := []byte("\xEF\xBB\xBFid ; Type;question;Range;cardinality;Constraint/Rule;Visible/relevant if\n" +
		"A;BOOLEAN;Q?;;;;\n" +
		"B;ENUM;\"Pick; one\";x|y;1:1;\"select y if A; deselect x if A\";A\n")

	records, err := ReadRecords(data, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{Row: 1, ID: "A", Type: "BOOLEAN", Question: "Q?"}, records[0])
	assert.Equal(t, Record{
		Row:         2,
		ID:          "B",
		Type:        "ENUM",
		Question:    "Pick; one",
		Range:       "x|y",
		Cardinality: "1:1",
		Rules:       "select y if A; deselect x if A",
		Visibility:  "A",
	}, records[1])
}

func TestReadRecords_ColumnOrderAndShortRows(t *testing.T) {
	data := []byte("VISIBILITY,RULES,CARDINALITY,RANGE,QUESTION,TYPE,ID,notes\nA,,,,,BOOLEAN,X,extra\n,,\n")

	records, err := ReadRecords(data, ',')
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "X", records[0].ID)
	assert.Equal(t, "A", records[0].Visibility)
	assert.True(t, records[1].blank())
}

func TestReadRecords_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "missing columns", data: "ID,TYPE,QUESTION\nA,BOOLEAN,Q\n"},
		{name: "duplicate column", data: "ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY,Constraint/Rule\n"},
		{name: "bad quoting", data: "ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY\nA,BOOLEAN,\"Q,,,,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords([]byte(tt.data), 0)
			assert.ErrorIs(t, err, core.ErrMalformedRecord)
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectDelimiter([]byte("ID,TYPE,QUESTION\nA;B;C;D")))
	assert.Equal(t, ';', DetectDelimiter([]byte("ID;TYPE;QUESTION\n")))
	assert.Equal(t, ',', DetectDelimiter(nil))
}

func TestSplitNumberRange(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "0 - 10", want: []string{"0", "10"}},
		{in: "0-10", want: []string{"0", "10"}},
		{in: "-5 - 5", want: []string{"-5", "5"}},
		{in: "-5--1", want: []string{"-5", "-1"}},
		{in: "1e-3 - 2", want: []string{"1e-3", "2"}},
		{in: "- 10", want: []string{"10"}},
		{in: "3 -", want: []string{"3"}},
		{in: "7", want: []string{"7"}},
		{in: "-.5", want: []string{"-.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitNumberRange(tt.in))
		})
	}
}
