package store

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// CSVWorksheet is a worksheet backed by a CSV file under a base directory,
// one file per worksheet name. Row 1 is the header.
type CSVWorksheet struct {
	dir  string
	name string
	mu   sync.Mutex
}

// NewCSVWorksheet opens (creating the directory if needed) a CSV-backed
// worksheet.
func NewCSVWorksheet(dir, name string) (*CSVWorksheet, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &CSVWorksheet{dir: dir, name: name}, nil
}

// Name returns the worksheet name.
func (w *CSVWorksheet) Name() string {
	return w.name
}

// Path returns the backing file path.
func (w *CSVWorksheet) Path() string {
	return filepath.Join(w.dir, w.name+".csv")
}

// RowCount returns the number of records in the file, header included.
// A missing file counts as zero rows.
func (w *CSVWorksheet) RowCount(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Open(w.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	count := 0
	for {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		count++
	}
	return count, nil
}

// Overwrite clears all existing content and writes header + rows.
func (w *CSVWorksheet) Overwrite(ctx context.Context, rows []PickRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Create(w.Path())
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

// Append writes only the new rows, without rewriting the header.
func (w *CSVWorksheet) Append(ctx context.Context, rows []PickRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.Path(), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalWithoutHeaders(&rows, f)
}

// Read returns the persisted rows. A missing or empty file reads as no rows.
func (w *CSVWorksheet) Read(ctx context.Context) ([]PickRow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Open(w.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	var rows []PickRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
