package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dopler/pkg/core"
	"github.com/leapstack-labs/dopler/pkg/loader"
	"github.com/stretchr/testify/require"
)

// ExampleModel is a two-decision model in the default comma layout.
const ExampleModel = `ID,TYPE,QUESTION,RANGE,CARDINALITY,RULES,VISIBILITY
A,BOOLEAN,Use A?,,,,
B,ENUM,Which B?,x|y,1:1,"select y if A; deselect x if !A",A
`

// LoadModel deserializes CSV text, failing the test on error.
func LoadModel(t testing.TB, text string) *core.DecisionModel {
	t.Helper()
	m, err := loader.New(core.NewFactory(), loader.WithLogger(NewTestLogger(t))).
		Deserialize(text, loader.CSVFormat)
	require.NoError(t, err)
	return m
}

// WriteModel writes content to dir/name and returns the path.
func WriteModel(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
