// Package dataset loads uploaded tabular sources (CSV files and SQLite
// tables) into the row/column shape the mapper and uploader work with.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/brijr/wp-poster/internal/models"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// ParseError is a malformed uploaded CSV. The load that produced it yields
// no partial dataset.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadCSV parses an uploaded byte stream as comma-separated values. The
// first record is the header row and defines the column names.
func LoadCSV(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("empty file")}
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows []models.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		row := make(models.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return &models.Dataset{
		Source:  "csv",
		Columns: columns,
		Rows:    rows,
	}, nil
}
