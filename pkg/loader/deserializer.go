// Package loader deserializes DOPLER decision models from tabular text.
//
// Loading runs in two passes over records materialized once from the input:
//
//   - structural: every row becomes a typed decision with its question,
//     range and cardinality, registered in the model in row order.
//   - resolution: RULES and VISIBILITY cells are parsed against the now
//     complete model, so rows may reference decisions defined further down.
//
// Any failure aborts the load and no partial model is returned. Errors are
// *core.LoadError values naming the row, decision, column and value.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/dopler/pkg/core"
)

// Deserializer loads decision models. It holds no per-load state, so one
// instance may serve any number of loads.
type Deserializer struct {
	factory   *core.Factory
	logger    *slog.Logger
	delimiter rune
}

// Option configures a Deserializer.
type Option func(*Deserializer)

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deserializer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDelimiter fixes the field delimiter instead of detecting it from the
// header. Zero restores detection.
func WithDelimiter(delimiter rune) Option {
	return func(d *Deserializer) {
		d.delimiter = delimiter
	}
}

// New creates a deserializer building decisions through factory. A nil
// factory gets a fresh one.
func New(factory *core.Factory, opts ...Option) *Deserializer {
	if factory == nil {
		factory = core.NewFactory()
	}
	d := &Deserializer{
		factory: factory,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SupportedFormats returns the formats Deserialize accepts.
func (d *Deserializer) SupportedFormats() []Format {
	return []Format{CSVFormat}
}

// DeserializeFile loads the model stored at path. The model is named after
// the file and records its absolute path.
func (d *Deserializer) DeserializeFile(path string) (*core.DecisionModel, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &core.LoadError{Kind: core.ErrIO, Value: path, Err: err}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &core.LoadError{Kind: core.ErrIO, Value: path, Err: err}
	}

	m, err := d.load(data, filepath.Base(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(abs), err)
	}
	m.SourceFile = abs
	return m, nil
}

// DeserializeReader reads r to the end and loads the model from it.
func (d *Deserializer) DeserializeReader(r io.Reader, name string) (*core.DecisionModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &core.LoadError{Kind: core.ErrIO, Value: name, Err: err}
	}

	m, err := d.load(data, name)
	if err != nil {
		return nil, err
	}
	m.SourceFile = core.InlineSource
	return m, nil
}

// Deserialize loads a model from in-memory text in the given format.
func (d *Deserializer) Deserialize(text string, format Format) (*core.DecisionModel, error) {
	if format != CSVFormat {
		return nil, &core.LoadError{
			Kind:     core.ErrUnsupportedFormat,
			Value:    format.Name,
			Expected: CSVFormat.Name,
		}
	}

	m, err := d.load([]byte(text), "")
	if err != nil {
		return nil, err
	}
	m.SourceFile = core.InlineSource
	return m, nil
}

// load materializes the records once and runs both passes over them.
func (d *Deserializer) load(data []byte, name string) (*core.DecisionModel, error) {
	records, err := ReadRecords(data, d.delimiter)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("deserializing decision model", "name", name, "records", len(records))

	run := newRun(d.factory, d.factory.NewModel(name), d.logger)
	if err := run.execute(records); err != nil {
		d.logger.Debug("deserialization failed", "name", name, "phase", run.phase, "error", err)
		return nil, err
	}
	return run.model, nil
}

// enrich locates err at a row, decision and column. Load errors raised by the
// factory or the model keep their class; anything else is classified here.
func enrich(err error, row int, id, column, value string) error {
	var le *core.LoadError
	if errors.As(err, &le) {
		if le.Row == 0 {
			le.Row = row
		}
		if le.ID == "" {
			le.ID = id
		}
		if le.Column == "" {
			le.Column = column
		}
		if le.Value == "" {
			le.Value = value
		}
		return le
	}

	kind := core.ErrMalformedExpression
	if errors.Is(err, core.ErrUnresolvedReference) {
		kind = core.ErrUnresolvedReference
	}
	return &core.LoadError{Kind: kind, Row: row, ID: id, Column: column, Value: value, Err: err}
}
