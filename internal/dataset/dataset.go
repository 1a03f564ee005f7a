// Package dataset reads delimited and XLSX tabular files into a raw Frame
// for the metrics engine. Extra columns are kept; schema checks happen in
// the engine, not here.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Frame is a parsed table: a header row plus raw string rows in input
// order. Rows may be ragged; missing trailing cells read as empty.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Column returns the index of the named column, or -1.
func (f *Frame) Column(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns row[col], or "" when the row is shorter than col.
func (f *Frame) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Load reads a dataset file, dispatching on extension: .xlsx via the XLSX
// reader, everything else as CSV.
func Load(path string) (*Frame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path, "")
	}
	return ReadCSV(path)
}

// ReadCSV reads a CSV file with a header row.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open csv")
	}
	defer f.Close()

	return ReadCSVFrom(f)
}

// ReadCSVFrom parses CSV from a reader (used for uploads).
func ReadCSVFrom(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("dataset: csv has no header row")
	}

	header := records[0]
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	return &Frame{Columns: header, Rows: records[1:]}, nil
}

// ReadXLSX reads a worksheet into a Frame. The first row is the header.
// An empty sheet name selects the first sheet.
func ReadXLSX(path, sheetName string) (*Frame, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: open xlsx")
	}

	var sheet *xlsx.Sheet
	if sheetName != "" {
		s, ok := f.Sheet[sheetName]
		if !ok {
			return nil, eris.Errorf("dataset: sheet %q not found", sheetName)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return nil, eris.New("dataset: xlsx has no sheets")
		}
		sheet = f.Sheets[0]
	}

	if len(sheet.Rows) == 0 {
		return nil, eris.New("dataset: xlsx sheet has no header row")
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		rows = append(rows, cells)
	}

	return &Frame{Columns: rows[0], Rows: rows[1:]}, nil
}
