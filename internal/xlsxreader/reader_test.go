package xlsxreader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/payops-th/disburse/internal/cell"
	"github.com/payops-th/disburse/internal/payload"
)

const (
	headerRow    = 22
	dataStartRow = 23
)

// writeWorkbook builds a workbook fixture with the given sheets and rows.
// rows maps a sheet name to its data rows starting at dataStartRow.
func writeWorkbook(t *testing.T, rows map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	for sheet, sheetRows := range rows {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, "A22", "header"))
		for i, row := range sheetRows {
			cellRef, err := excelize.CoordinatesToCellName(1, dataStartRow+i)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func collect(t *testing.T, it *Iterator) []Row {
	t.Helper()
	var rows []Row
	for it.Next() {
		rows = append(rows, it.Row())
	}
	require.NoError(t, it.Err())
	return rows
}

func TestIteratorSkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {
			{"GPM", "Agent", "Bank_transfer", "DT0001"},
			{"", "", "", ""},
			{"GPM", "Agent", "Bank_transfer", "DT0002"},
		},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 2, "fully empty rows produce no document")
	assert.Equal(t, dataStartRow, rows[0].Number)
	assert.Equal(t, dataStartRow+2, rows[1].Number)
}

func TestIteratorHeaderRowsExcluded(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {
			{"GPM", "Agent", "Bank_transfer", "DT0001"},
		},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 1, "the header row above dataStartRow is not data")
}

func TestIteratorSheetOrderAndVariantTags(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {{"agent-row"}},
		"API_Doc_Company":      {{"company-row"}},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
		{Name: "API_Doc_Company", Variant: payload.VariantCompany},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 2)
	assert.Equal(t, "API_Doc_Agent_Broker", rows[0].Sheet)
	assert.Equal(t, payload.VariantAgentBroker, rows[0].Variant)
	assert.Equal(t, "API_Doc_Company", rows[1].Sheet)
	assert.Equal(t, payload.VariantCompany, rows[1].Variant)
}

func TestIteratorMissingOptionalSheetSkipped(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {{"agent-row"}},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
		{Name: "API_Doc_Company", Variant: payload.VariantCompany},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"API_Doc_Agent_Broker"}, it.Sheets())
}

func TestIteratorMissingRequiredSheetFatal(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {{"agent-row"}},
	})

	_, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Company", Variant: payload.VariantCompany, Required: true},
	}, dataStartRow)
	assert.Error(t, err)
}

func TestIteratorCellTyping(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {
			{"GPM", 1500, true, "note"},
		},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 1)
	cells := rows[0].Cells
	require.GreaterOrEqual(t, len(cells), 4)
	assert.Equal(t, cell.Text, cells[0].Kind)
	assert.Equal(t, cell.Number, cells[1].Kind)
	assert.Equal(t, 1500.0, cells[1].Number)
	assert.Equal(t, cell.Boolean, cells[2].Kind)
	assert.True(t, cells[2].Bool)
}

func TestIteratorKeepsLeadingZeroIdentifiers(t *testing.T) {
	// Identity-like fields are text in the workbook even when they look
	// numeric. They must reach the assembled payload verbatim: no dropped
	// leading zeros, no float64 rounding of long account numbers.
	f := excelize.NewFile()
	_, err := f.NewSheet("API_Doc_Agent_Broker")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("API_Doc_Agent_Broker", "H23", "DOC-001"))
	require.NoError(t, f.SetCellStr("API_Doc_Agent_Broker", "AA23", "0812345678"))
	require.NoError(t, f.SetCellStr("API_Doc_Agent_Broker", "AE23", "004"))
	require.NoError(t, f.SetCellStr("API_Doc_Agent_Broker", "AF23", "0001"))
	require.NoError(t, f.SetCellStr("API_Doc_Agent_Broker", "AG23", "1234567890123456789"))
	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	rows := collect(t, it)
	require.Len(t, rows, 1)

	asm, err := payload.NewAssembler(payload.VariantAgentBroker, []string{"A", "B", "C", "D"})
	require.NoError(t, err)
	doc, err := asm.Assemble(rows[0].Sheet, rows[0].Number, rows[0].Cells)
	require.NoError(t, err)

	payee := doc.Payload.Approval.Payees.PayeeInfo[0]
	assert.Equal(t, "0812345678", payee.MobileNo)
	assert.Equal(t, "004", payee.BankInfo.BankCode)
	assert.Equal(t, "0001", payee.BankInfo.BranchCode)
	assert.Equal(t, "1234567890123456789", payee.BankInfo.AccountNo)
}

func TestIteratorEmptySheetYieldsNothing(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"API_Doc_Agent_Broker": {},
	})

	it, err := Open(path, []SheetSpec{
		{Name: "API_Doc_Agent_Broker", Variant: payload.VariantAgentBroker},
	}, dataStartRow)
	require.NoError(t, err)
	defer it.Close()

	assert.Empty(t, collect(t, it))
}
