package ingest

import (
	"encoding/csv"
	"io"

	"github.com/allisonhorst/observable-translations/errors"
	"github.com/allisonhorst/observable-translations/frame"
)

// WriteCSV renders a table as delimited text: a header row followed by one
// record per row. Missing values become empty fields.
func WriteCSV(t *frame.Table, w io.Writer, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	writer := csv.NewWriter(w)
	writer.Comma = o.Comma

	header := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		header[i] = c.Name()
	}
	if err := writer.Write(header); err != nil {
		return errors.E(errors.OpIngest, errors.KIO, err)
	}

	record := make([]string, len(header))
	for _, r := range t.Rows() {
		for i, v := range r.Values() {
			record[i] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return errors.E(errors.OpIngest, errors.KIO, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.E(errors.OpIngest, errors.KIO, err)
	}
	return nil
}
