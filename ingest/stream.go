package ingest

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/frame"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/value"
)

// RowResult is a single streamed row. It holds either a row or an error.
type RowResult interface {
	Row() frame.Row
	Err() error
}

type rowResult struct {
	row frame.Row
	err error
}

func (r rowResult) Row() frame.Row {
	return r.row
}

func (r rowResult) Err() error {
	return r.err
}

func RowResultSuccess(row frame.Row) RowResult {
	return rowResult{row: row}
}

func RowResultError(err error) RowResult {
	return rowResult{err: err}
}

// StreamingTable delivers rows one at a time as the input is read. Its
// schema is available immediately; the row channel closes when the input is
// exhausted, a parse error is delivered, or the context is cancelled.
//
// Streaming never infers types: a column not named in WithSchema is a string
// column. Use ReadCSV when inference is wanted.
type StreamingTable struct {
	schema *frame.Table
	opts   Options
	rows   chan RowResult
}

// Columns returns the streamed table's column descriptors.
func (s *StreamingTable) Columns() []frame.Column {
	return s.schema.Columns()
}

// Name returns the streamed table's name.
func (s *StreamingTable) Name() string {
	return s.schema.Name()
}

// Rows returns the channel rows are delivered on.
func (s *StreamingTable) Rows() <-chan RowResult {
	return s.rows
}

// ToTable drains the stream into a materialized table. The first delivered
// error aborts and is returned.
func (s *StreamingTable) ToTable() (*frame.Table, error) {
	cols := make([]frame.ColumnData, len(s.schema.Columns()))
	for i, c := range s.schema.Columns() {
		cols[i] = frame.ColumnData{Name: c.Name(), Type: c.Type()}
	}

	for r := range s.rows {
		if r.Err() != nil {
			return nil, r.Err()
		}
		for i, v := range r.Row().Values() {
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	return frame.New(s.schema.Name(), cols...)
}

// StreamCSV reads the header row eagerly and then delivers rows over a
// channel as they are parsed. The reader goroutine exits when the input
// ends, on the first parse error, or when ctx is cancelled; cancellation
// delivers one KCancelled result when the consumer is still listening.
func StreamCSV(ctx context.Context, r io.Reader, opts ...Option) (*StreamingTable, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.Comma = o.Comma

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ES(errors.OpIngest, errors.KBadFormat, "input has no header row")
	}
	if err != nil {
		return nil, errors.E(errors.OpIngest, errors.KBadFormat, err)
	}

	cols := make([]frame.ColumnData, len(header))
	for i, name := range header {
		typ := types.String
		if t, ok := o.Schema[name]; ok {
			if !types.Valid(t) {
				return nil, errors.ES(errors.OpIngest, errors.KClientArgs,
					"schema gives column %q unknown type %q", name, t)
			}
			typ = t
		}
		cols[i] = frame.ColumnData{Name: name, Type: typ}
	}
	for name := range o.Schema {
		found := false
		for _, h := range header {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.ES(errors.OpIngest, errors.KUnknownColumn,
				"schema names column %q which is not in the header", name)
		}
	}

	schema, err := frame.New(o.Name, cols...)
	if err != nil {
		return nil, err
	}

	s := &StreamingTable{
		schema: schema,
		opts:   o,
		rows:   make(chan RowResult),
	}

	go s.read(ctx, reader)

	return s, nil
}

func (s *StreamingTable) read(ctx context.Context, reader *csv.Reader) {
	defer close(s.rows)

	columns := s.schema.Columns()
	for ordinal := 0; ; ordinal++ {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				s.report(ctx, RowResultError(errors.E(errors.OpIngest, errors.KShapeMismatch, err)))
			} else {
				s.report(ctx, RowResultError(errors.E(errors.OpIngest, errors.KIO, err)))
			}
			return
		}

		vals := make(value.Values, len(columns))
		parseFailed := false
		for i, c := range columns {
			field := record[i]
			if s.opts.isNull(field) {
				field = ""
			}
			v, perr := value.ParseAs(c.Type(), field)
			if perr != nil {
				s.report(ctx, RowResultError(errors.ES(errors.OpIngest, errors.KConversion,
					"record %d, column %q: %s", ordinal+1, c.Name(), perr)))
				parseFailed = true
				break
			}
			vals[i] = v
		}
		if parseFailed {
			return
		}

		row, err := frame.NewRow(s.schema, ordinal, vals)
		if err != nil {
			s.report(ctx, RowResultError(err))
			return
		}
		if !s.report(ctx, RowResultSuccess(row)) {
			return
		}
	}
}

func (s *StreamingTable) report(ctx context.Context, r RowResult) bool {
	select {
	case s.rows <- r:
		return true
	case <-ctx.Done():
		// Try to tell a still-listening consumer the stream was cut short.
		select {
		case s.rows <- RowResultError(errors.ES(errors.OpIngest, errors.KCancelled,
			"stream cancelled: %s", ctx.Err())):
		default:
		}
		return false
	}
}
