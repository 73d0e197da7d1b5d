package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// RowError reports a row that could not be read. Bad rows are skipped, not
// fatal.
type RowError struct {
	Line  int
	Error string
}

// Read parses CSV data into a frame. The first record is the header; every
// column is loaded as a string column. Cells that are empty or the literal
// "NA" are missing.
func Read(r io.Reader) (*Frame, []RowError, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header: %w", err)
	}

	var rowErrors []RowError
	columns := make([][]string, len(header))
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Error: err.Error()})
			continue
		}
		for i, v := range record {
			if v == "NA" {
				v = ""
			}
			columns[i] = append(columns[i], v)
		}
	}

	fr := New()
	for i, name := range header {
		if err := fr.AddStrings(name, columns[i]); err != nil {
			return nil, nil, err
		}
	}
	return fr, rowErrors, nil
}

// Load reads a CSV file into a frame.
func Load(path string) (*Frame, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write serializes the frame as CSV, header first. Missing cells are written
// empty.
func Write(fr *Frame, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(fr.Names()); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	record := make([]string, len(fr.Names()))
	for row := 0; row < fr.NumRows(); row++ {
		for i, name := range fr.Names() {
			record[i] = fr.cell(name, row)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Save writes the frame to a CSV file.
func Save(fr *Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()
	return Write(fr, f)
}
