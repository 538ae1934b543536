// =============================================================================
// Disbursement Payload Generator - Column Resolver
// =============================================================================
//
// This package maps symbolic field names (e.g. "doc_no", "bank_code") to
// positional column references in a data row. Two addressing modes coexist:
// spreadsheet column letters ("A", "AY") converted to zero-based indexes,
// and plain integer indexes. Every field a payload variant references must
// resolve to exactly one position; an unmapped field is a configuration
// error that aborts the run, never a per-row error.
//
// =============================================================================

package columns

import (
	"fmt"
	"sort"

	"github.com/payops-th/disburse/internal/cell"
)

// =============================================================================
// LETTER ADDRESSING
// =============================================================================

// LetterIndex converts a spreadsheet column letter sequence to a zero-based
// index: "A" -> 0, "Z" -> 25, "AA" -> 26, "AY" -> 50. Lowercase letters are
// accepted. An empty string or any non-letter character is an error.
func LetterIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("empty column letter")
	}
	num := 0
	for _, r := range letters {
		switch {
		case r >= 'A' && r <= 'Z':
			num = num*26 + int(r-'A') + 1
		case r >= 'a' && r <= 'z':
			num = num*26 + int(r-'a') + 1
		default:
			return 0, fmt.Errorf("invalid column letter %q", letters)
		}
	}
	return num - 1, nil
}

// =============================================================================
// COLUMN MAP
// =============================================================================

// ColumnMap associates symbolic field names with zero-based column indexes.
type ColumnMap map[string]int

// FromLetters builds a ColumnMap from letter-based column references.
// It fails if any letter is invalid or if two fields map to the same
// position - both are configuration defects, not row data problems.
func FromLetters(fields map[string]string) (ColumnMap, error) {
	m := make(ColumnMap, len(fields))
	used := make(map[int]string, len(fields))

	// Walk fields in a stable order so duplicate-position errors are
	// deterministic.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		idx, err := LetterIndex(fields[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if other, dup := used[idx]; dup {
			return nil, fmt.Errorf("fields %q and %q both map to column %s", other, name, fields[name])
		}
		used[idx] = name
		m[name] = idx
	}
	return m, nil
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver supplies normalized cell values from a raw row, addressed by
// symbolic field name through a ColumnMap.
type Resolver struct {
	columns ColumnMap
}

// NewResolver creates a resolver over the given column map.
func NewResolver(m ColumnMap) *Resolver {
	return &Resolver{columns: m}
}

// Value resolves a symbolic field name to its normalized cell value.
// A name missing from the column map is a configuration error. A mapped
// position beyond the end of the row resolves to an empty cell - trailing
// blank cells are routinely trimmed by the workbook reader.
func (r *Resolver) Value(row []cell.Cell, field string) (cell.Cell, error) {
	idx, ok := r.columns[field]
	if !ok {
		return cell.EmptyCell(), fmt.Errorf("field %q has no column mapping", field)
	}
	if idx >= len(row) {
		return cell.EmptyCell(), nil
	}
	return cell.Normalize(row[idx]), nil
}
