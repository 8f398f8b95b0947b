// Package emit serializes staging records to CSV.
package emit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bluefractalfish/whirlwind/pkg/safeio"
)

// EmissionError reports a CSV write failure. It is fatal: the caller
// propagates it rather than recovering.
type EmissionError struct {
	Err error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("writing csv: %v", e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }

// WriteCSV writes a header row in the given column order, then one row per
// record, substituting "" for any column absent from a record. Standard
// CSV quoting applies to embedded separators.
func WriteCSV(w io.Writer, columns []string, rows []map[string]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return &EmissionError{Err: err}
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return &EmissionError{Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &EmissionError{Err: err}
	}
	return nil
}

// WriteCSVFile serializes to a buffer first, then writes the file in one
// shot so a serialization failure never leaves a truncated CSV behind.
func WriteCSVFile(path string, columns []string, rows []map[string]string) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, columns, rows); err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(path, buf.Bytes()); err != nil {
		return &EmissionError{Err: err}
	}
	return nil
}
