package ingest

import (
	"github.com/allisonhorst/observable-translations/types"
)

// Options controls delimited-text ingestion.
type Options struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune
	// Name becomes the loaded table's name.
	Name string
	// NullTokens are field values read as missing. The empty field is
	// always missing; defaults add "NA".
	NullTokens []string
	// Schema fixes the type of the named columns, overriding inference.
	// Names not present in the header are a KUnknownColumn error.
	Schema map[string]types.Column
	// InferenceSample bounds how many records type inference examines;
	// 0 means all of them. Streaming ingestion never infers.
	InferenceSample int
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Comma:      ',',
		NullTokens: []string{"NA"},
	}
}

// WithComma sets the field delimiter.
func WithComma(c rune) Option {
	return func(o *Options) { o.Comma = c }
}

// WithName names the loaded table.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithNullTokens replaces the set of field values read as missing. The
// empty field stays missing regardless.
func WithNullTokens(tokens ...string) Option {
	return func(o *Options) { o.NullTokens = tokens }
}

// WithSchema fixes column types by name, overriding inference for those
// columns. Streaming ingestion types all unnamed columns as string.
func WithSchema(schema map[string]types.Column) Option {
	return func(o *Options) { o.Schema = schema }
}

// WithInferenceSample bounds how many records type inference examines.
func WithInferenceSample(n int) Option {
	return func(o *Options) { o.InferenceSample = n }
}

func (o Options) isNull(field string) bool {
	if field == "" {
		return true
	}
	for _, t := range o.NullTokens {
		if field == t {
			return true
		}
	}
	return false
}
