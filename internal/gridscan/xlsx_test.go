package gridscan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

type sheetFixture struct {
	name string
	rows [][]any
}

func writeWorkbook(t *testing.T, sheets []sheetFixture) string {
	t.Helper()

	f := xlsx.NewFile()
	for _, sf := range sheets {
		sheet, err := f.AddSheet(sf.name)
		require.NoError(t, err)
		for _, rowData := range sf.rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				if cellData != nil {
					cell.SetValue(cellData)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestOpenWorkbook(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, []sheetFixture{
		{name: "General Info", rows: [][]any{
			{"GENERAL INFO"},
			{"SIC Code (4 Digits)", 3555.0},
			{"Annual Sales ($)", "12,000,000"},
			{"  padded  ", nil, "note"},
		}},
		{name: "Energy-Waste Info", rows: [][]any{
			{"Energy-Waste Info", "Consumption"},
			{"Electrical Energy", 1.2e6},
		}},
	})

	grids, err := OpenWorkbook(path)
	require.NoError(t, err)
	require.Len(t, grids, 2, "sheet order is preserved")

	gi := grids[0]
	assert.Equal(t, "General Info", gi.Name)
	assert.Equal(t, 4, gi.MaxRow())
	assert.Equal(t, 3, gi.MaxCol())

	assert.Equal(t, Text("GENERAL INFO"), gi.Cell(1, 1))
	assert.Equal(t, Number(3555), gi.Cell(2, 2))
	assert.Equal(t, Text("12,000,000"), gi.Cell(3, 2), "formatted strings stay strings")
	assert.Equal(t, Text("padded"), gi.Cell(4, 1), "cell text is trimmed")
	assert.True(t, gi.Cell(4, 2).IsEmpty())
	assert.True(t, gi.Cell(9, 9).IsEmpty(), "out of range reads as empty")

	ew := grids[1]
	assert.Equal(t, "Energy-Waste Info", ew.Name)
	assert.Equal(t, Number(1.2e6), ew.Cell(2, 2))
}

func TestOpenWorkbookScan(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, []sheetFixture{
		{name: "Rec Info", rows: [][]any{
			{"ARC Code", "Description", "Savings ($)"},
			{2111.0, "Lower boiler set point", 4200.0},
			{2411.0, "LED retrofit", 9100.0},
		}},
	})

	grids, err := OpenWorkbook(path)
	require.NoError(t, err)
	require.Len(t, grids, 1)

	tables := DetectTables(grids[0], 0)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"ARC Code", "Description", "Savings ($)"}, tables[0].Headers)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, float64(2111), tables[0].Rows[0]["ARC Code"])
	assert.Equal(t, "LED retrofit", tables[0].Rows[1]["Description"])
}

func TestOpenWorkbookMissing(t *testing.T) {
	t.Parallel()

	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
