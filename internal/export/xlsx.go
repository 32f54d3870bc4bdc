package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements SheetWriter by saving a workbook to a local file.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer that saves to path, replacing any existing file.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write creates a workbook with one worksheet per sheet, in order.
func (w *XLSXWriter) Write(ctx context.Context, tables []Sheet) (err error) {
	if len(tables) == 0 {
		return errors.New("no sheets to write")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	// A new workbook starts with a single default sheet; reuse it for the first table.
	if err := f.SetSheetName(f.GetSheetName(0), tables[0].Name); err != nil {
		return fmt.Errorf("renaming sheet %s: %w", tables[0].Name, err)
	}
	for _, t := range tables[1:] {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", t.Name, err)
		}
	}

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: %w", t.Name, i+1, err)
			}
			if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
				return fmt.Errorf("writing sheet %s row %d: %w", t.Name, i+1, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving %s: %w", w.path, err)
	}
	return nil
}
