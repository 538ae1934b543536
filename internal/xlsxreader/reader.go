// =============================================================================
// Disbursement Payload Generator - Workbook Row Iterator
// =============================================================================
//
// This module reads data rows from the named sheets of an Excel workbook.
// Each sheet has a header at a configured row and data starting at the
// configured following row. Rows where every cell is empty are skipped -
// they are not data and produce no document. The iterator yields rows in
// declared sheet order, and within a sheet in file order, each row tagged
// with the owning sheet's payload variant. Single pass, no rewind.
//
// =============================================================================

package xlsxreader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/payops-th/disburse/internal/cell"
	"github.com/payops-th/disburse/internal/payload"
)

// =============================================================================
// TYPES
// =============================================================================

// SheetSpec names one sheet to read and the variant its rows produce.
type SheetSpec struct {
	// Name is the workbook sheet name.
	Name string

	// Variant tags every row read from this sheet.
	Variant payload.Variant

	// Required marks the sheet as mandatory. A missing required sheet is a
	// configuration error; missing non-required sheets are skipped, the way
	// partially filled workbook templates are tolerated upstream.
	Required bool
}

// Row is one non-empty data row, immutable once produced.
type Row struct {
	// Sheet is the owning sheet name.
	Sheet string

	// Variant is the owning sheet's payload variant.
	Variant payload.Variant

	// Number is the 1-based row number within the sheet.
	Number int

	// Cells are the row's typed cell values in column order.
	Cells []cell.Cell
}

// =============================================================================
// ITERATOR
// =============================================================================

// Iterator walks the data rows of the configured sheets one at a time.
type Iterator struct {
	file         *excelize.File
	specs        []SheetSpec
	dataStartRow int

	sheetPos int        // index of the sheet currently being walked
	rows     [][]string // raw rows of the current sheet
	rowPos   int        // 0-based cursor into rows
	current  Row
	err      error
}

// Open opens the workbook and prepares an iterator over the given sheets,
// starting at the 1-based dataStartRow. Missing required sheets fail here,
// before any row is processed.
func Open(path string, specs []SheetSpec, dataStartRow int) (*Iterator, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	var active []SheetSpec
	for _, spec := range specs {
		if !present[spec.Name] {
			if spec.Required {
				f.Close()
				return nil, fmt.Errorf("required sheet %q not found in workbook", spec.Name)
			}
			continue
		}
		active = append(active, spec)
	}

	return &Iterator{
		file:         f,
		specs:        active,
		dataStartRow: dataStartRow,
		sheetPos:     -1,
	}, nil
}

// Next advances to the next non-empty data row. It returns false when every
// configured sheet is exhausted or a read error occurred; check Err after
// the loop.
func (it *Iterator) Next() bool {
	for {
		// Load the next sheet when the current one is exhausted.
		for it.sheetPos < 0 || it.rowPos >= len(it.rows) {
			it.sheetPos++
			if it.sheetPos >= len(it.specs) {
				return false
			}
			rows, err := it.file.GetRows(it.specs[it.sheetPos].Name)
			if err != nil {
				it.err = fmt.Errorf("failed to read sheet %q: %w", it.specs[it.sheetPos].Name, err)
				return false
			}
			it.rows = rows
			it.rowPos = it.dataStartRow - 1
		}

		raw := it.rows[it.rowPos]
		rowNum := it.rowPos + 1
		it.rowPos++

		cells := sniffRow(raw)
		if isRowEmpty(cells) {
			continue
		}

		spec := it.specs[it.sheetPos]
		it.current = Row{
			Sheet:   spec.Name,
			Variant: spec.Variant,
			Number:  rowNum,
			Cells:   cells,
		}
		return true
	}
}

// Row returns the row produced by the last successful Next.
func (it *Iterator) Row() Row {
	return it.current
}

// Err returns the first read error encountered, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Close releases the underlying workbook.
func (it *Iterator) Close() error {
	return it.file.Close()
}

// Sheets returns the names of the configured sheets actually present in the
// workbook, in processing order.
func (it *Iterator) Sheets() []string {
	names := make([]string, 0, len(it.specs))
	for _, spec := range it.specs {
		names = append(names, spec.Name)
	}
	return names
}

// =============================================================================
// HELPERS
// =============================================================================

// sniffRow converts the raw string row from excelize into typed cells.
func sniffRow(raw []string) []cell.Cell {
	cells := make([]cell.Cell, len(raw))
	for i, v := range raw {
		cells[i] = cell.Sniff(v)
	}
	return cells
}

// isRowEmpty reports whether every cell of the row is empty after
// normalization.
func isRowEmpty(cells []cell.Cell) bool {
	for _, c := range cells {
		if !cell.Normalize(c).IsEmpty() {
			return false
		}
	}
	return true
}
