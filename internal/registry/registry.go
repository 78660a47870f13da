// Package registry keeps the decision models loaded by a CLI run.
// Models are keyed by source file and can also be looked up by their
// display name. Files that failed to load are kept alongside so reports
// can list them.
package registry

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Failure is a source file that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// ModelRegistry is safe for concurrent use by loader goroutines.
type ModelRegistry struct {
	mu sync.RWMutex

	// bySource maps source files to models: "/data/car.csv" → *DecisionModel
	bySource map[string]*core.DecisionModel

	// byName maps display names to sources: "car.csv" → "/data/car.csv"
	// Note: if several files share a name, the last registered wins
	byName map[string]string

	failures map[string]error
}

// NewModelRegistry creates a new empty registry.
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{
		bySource: make(map[string]*core.DecisionModel),
		byName:   make(map[string]string),
		failures: make(map[string]error),
	}
}

// Register adds a model under its source file and display name.
// A later successful load clears an earlier failure for the same source.
func (r *ModelRegistry) Register(m *core.DecisionModel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySource[m.SourceFile] = m
	r.byName[m.Name] = m.SourceFile

	// Also register without the extension: "car.csv" → "car"
	if ext := filepath.Ext(m.Name); ext != "" {
		r.byName[strings.TrimSuffix(m.Name, ext)] = m.SourceFile
	}
	delete(r.failures, m.SourceFile)
}

// RegisterFailure records that path could not be loaded.
func (r *ModelRegistry) RegisterFailure(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[path] = err
}

// Resolve finds a model by source file, display name, or name without
// extension.
func (r *ModelRegistry) Resolve(key string) (*core.DecisionModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.bySource[key]; ok {
		return m, true
	}
	if src, ok := r.byName[key]; ok {
		return r.bySource[src], true
	}
	if abs, err := filepath.Abs(key); err == nil {
		if m, ok := r.bySource[abs]; ok {
			return m, true
		}
	}
	return nil, false
}

// AllModels returns all registered models ordered by source file.
func (r *ModelRegistry) AllModels() []*core.DecisionModel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make([]*core.DecisionModel, 0, len(r.bySource))
	for _, m := range r.bySource {
		models = append(models, m)
	}
	slices.SortFunc(models, func(a, b *core.DecisionModel) int {
		return strings.Compare(a.SourceFile, b.SourceFile)
	})
	return models
}

// Failures returns the failed loads ordered by path.
func (r *ModelRegistry) Failures() []Failure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	failures := make([]Failure, 0, len(r.failures))
	for path, err := range r.failures {
		failures = append(failures, Failure{Path: path, Err: err})
	}
	slices.SortFunc(failures, func(a, b Failure) int {
		return strings.Compare(a.Path, b.Path)
	})
	return failures
}

// Count returns the number of registered models.
func (r *ModelRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySource)
}
