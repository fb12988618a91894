package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingColumn is returned when a sheet lacks a required key column.
var ErrMissingColumn = errors.New("missing column")

// table is a header-indexed sheet of string cells.
type table struct {
	header map[string]int
	rows   [][]string
}

func newTable(records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, errors.New("sheet is empty")
	}
	t := &table{header: make(map[string]int, len(records[0]))}
	for i, h := range records[0] {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := t.header[key]; !dup {
			t.header[key] = i
		}
	}
	t.rows = records[1:]
	return t, nil
}

// column returns the index of the first alias present in the header.
func (t *table) column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.header[normalizeHeader(a)]; ok {
			return i, true
		}
	}
	return -1, false
}

// requireColumn is column but fails with ErrMissingColumn.
func (t *table) requireColumn(aliases ...string) (int, error) {
	i, ok := t.column(aliases...)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, aliases[0])
	}
	return i, nil
}

// cell returns the trimmed cell, or "" for short rows and absent columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func readCSV(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true    // published sheets quote loosely
	reader.FieldsPerRecord = -1 // trailing empty cells are often dropped

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return newTable(records)
}

// readXLSX reads the first worksheet of a workbook.
func readXLSX(r io.Reader) (*table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return newTable(rows)
}
