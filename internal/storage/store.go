package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sadpig70/PAT-System/internal/sim"
)

const Extension = ".csv"

// OutputPath returns the table file name for an output basename.
func OutputPath(basename string) string {
	if strings.HasSuffix(basename, Extension) {
		return basename
	}
	return basename + Extension
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTable writes t as comma-delimited text with the column names as
// header and one line per sample.
func WriteTable(w io.Writer, t *sim.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(sim.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, sim.NumColumns)
	for i := 0; i < t.Len(); i++ {
		for c, v := range t.Row(i) {
			record[c] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func SaveTable(path string, t *sim.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteTable(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadTable parses a table written by WriteTable. Columns may appear in any
// order, but all eight must be present.
func ReadTable(r io.Reader) (*sim.Table, error) {
	header, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	index := make(map[sim.Column]int, sim.NumColumns)
	for i, name := range header {
		if c, ok := sim.ParseColumn(strings.TrimSpace(name)); ok {
			index[c] = i
		}
	}
	for _, c := range sim.Columns() {
		if _, ok := index[c]; !ok {
			return nil, &sim.ColumnError{Column: c.String(), Row: -1, Wrapped: sim.ErrMissingColumn}
		}
	}

	t := sim.NewTable(len(records))
	for c, i := range index {
		col := t.Column(c)
		for row, record := range records {
			v, err := parseCell(record, i)
			if err != nil {
				return nil, &sim.ColumnError{Column: c.String(), Row: row + 1, Wrapped: err}
			}
			col[row] = v
		}
	}

	return t, nil
}

func LoadTable(path string) (*sim.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// ReadReference reads an experimental dataset. Property columns are kept,
// every other column is ignored. Empty cells are skipped.
func ReadReference(r io.Reader) (sim.Reference, error) {
	header, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	ref := sim.Reference{}
	for i, name := range header {
		c, ok := sim.ParseColumn(strings.TrimSpace(name))
		if !ok || !c.IsProperty() {
			continue
		}

		values := make([]float64, 0, len(records))
		for row, record := range records {
			if i >= len(record) || strings.TrimSpace(record[i]) == "" {
				continue
			}
			v, err := parseCell(record, i)
			if err != nil {
				return nil, &sim.ColumnError{Column: c.String(), Row: row + 1, Wrapped: err}
			}
			values = append(values, v)
		}
		ref[c] = values
	}

	return ref, nil
}

func LoadReference(path string) (sim.Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ref, err := ReadReference(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ref, nil
}

func readRecords(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty file: missing header")
	}

	return records[0], records[1:], nil
}

// parseCell rejects NaN and infinities, which strconv accepts.
func parseCell(record []string, i int) (float64, error) {
	if i >= len(record) {
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", sim.ErrInvalidArgument, record[i])
	}
	return v, nil
}
