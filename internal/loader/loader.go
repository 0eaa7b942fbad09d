// Package loader reads the raw coffee-quality table into memory.
//
// The loader is format-aware but schema-agnostic: it produces a header plus
// string cells and leaves all typing and validation to the cleaner.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/brewlytics/cupping/internal/common"
)

// RawTable is an untyped row/column view of the source dataset.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a named column in the header.
func (t *RawTable) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// FromReader parses CSV content into a RawTable. The first record is the
// header; every following record is a data row.
func FromReader(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // cleaner handles short rows cell by cell

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, common.ErrEmptyDataset
	}

	return &RawTable{Columns: header, Rows: rows}, nil
}

// FromFile reads a CSV dataset from disk.
func FromFile(path string) (*RawTable, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	table, err := FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return table, nil
}

// FromURL fetches a CSV dataset over HTTP.
func FromURL(ctx context.Context, url string) (*RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dataset %s: status %d", url, resp.StatusCode)
	}

	table, err := FromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", url, err)
	}
	return table, nil
}
