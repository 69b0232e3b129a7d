/*
Package ingest loads delimited text into tables and writes tables back out.

ReadCSV materializes a whole table, inferring a column type for every column
the caller did not fix with WithSchema. StreamCSV parses the header eagerly
and delivers rows over a channel as they are read, for inputs too large to
hold twice in memory.
*/
package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/frame"
	"github.com/allisonhorst/observable-translations/types"
	"github.com/allisonhorst/observable-translations/utils"
	"github.com/allisonhorst/observable-translations/value"
)

// ReadCSV reads delimited text with a header row into a table.
func ReadCSV(ctx context.Context, r io.Reader, opts ...Option) (*frame.Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	reader := csv.NewReader(r)
	reader.Comma = o.Comma

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.ES(errors.OpIngest, errors.KBadFormat, "input has no header row")
	}
	if err != nil {
		return nil, errors.E(errors.OpIngest, errors.KBadFormat, err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		if _, ok := err.(*csv.ParseError); ok {
			return nil, errors.E(errors.OpIngest, errors.KShapeMismatch, err)
		}
		return nil, errors.E(errors.OpIngest, errors.KIO, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.ES(errors.OpIngest, errors.KCancelled, "load cancelled: %s", err)
	}

	colTypes, err := resolveTypes(header, records, o)
	if err != nil {
		return nil, err
	}

	cols := make([]frame.ColumnData, len(header))
	for ci, name := range header {
		vals := make(value.Values, len(records))
		for ri, record := range records {
			field := record[ci]
			if o.isNull(field) {
				field = ""
			}
			v, perr := value.ParseAs(colTypes[ci], field)
			if perr != nil {
				return nil, errors.ES(errors.OpIngest, errors.KConversion,
					"record %d, column %q: %s", ri+1, name, perr)
			}
			vals[ri] = v
		}
		cols[ci] = frame.ColumnData{Name: name, Type: colTypes[ci], Values: vals}
	}

	t, err := frame.New(o.Name, cols...)
	if err != nil {
		return nil, err
	}

	utils.Ctx(ctx).Debug().
		Str("table", o.Name).
		Int("rows", t.RowCount()).
		Int("columns", len(header)).
		Dur("took", time.Since(start)).
		Msg("csv load done")

	return t, nil
}

// resolveTypes fixes a type for every header column: the caller's schema
// where given, inference over the records otherwise.
func resolveTypes(header []string, records [][]string, o Options) ([]types.Column, error) {
	byName := map[string]int{}
	for i, name := range header {
		byName[name] = i
	}
	for name, typ := range o.Schema {
		if _, ok := byName[name]; !ok {
			return nil, errors.ES(errors.OpIngest, errors.KUnknownColumn,
				"schema names column %q which is not in the header", name)
		}
		if !types.Valid(typ) {
			return nil, errors.ES(errors.OpIngest, errors.KClientArgs,
				"schema gives column %q unknown type %q", name, typ)
		}
	}

	sample := records
	if o.InferenceSample > 0 && o.InferenceSample < len(sample) {
		sample = sample[:o.InferenceSample]
	}

	out := make([]types.Column, len(header))
	for i, name := range header {
		if typ, ok := o.Schema[name]; ok {
			out[i] = typ
			continue
		}
		out[i] = inferType(i, sample, o)
	}
	return out, nil
}

// inferType walks the sample and settles on the narrowest type in the
// long -> real -> bool -> string lattice that parses every present field.
// An all-missing column is a string column.
func inferType(col int, sample [][]string, o Options) types.Column {
	canLong, canReal, canBool := true, true, true
	present := false

	for _, record := range sample {
		field := record[col]
		if o.isNull(field) {
			continue
		}
		present = true

		if canLong {
			if _, err := strconv.ParseInt(field, 10, 64); err != nil {
				canLong = false
			}
		}
		if canReal {
			if _, err := strconv.ParseFloat(field, 64); err != nil {
				canReal = false
			}
		}
		if canBool {
			if _, err := strconv.ParseBool(field); err != nil {
				canBool = false
			}
		}
		if !canLong && !canReal && !canBool {
			break
		}
	}

	switch {
	case !present:
		return types.String
	case canLong:
		return types.Long
	case canReal:
		return types.Real
	case canBool:
		return types.Bool
	}
	return types.String
}
