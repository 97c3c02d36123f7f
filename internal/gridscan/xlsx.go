package gridscan

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// OpenWorkbook reads an XLSX file and returns one grid per sheet, in workbook
// order.
func OpenWorkbook(path string) ([]*Grid, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "gridscan: open workbook")
	}

	grids := make([]*Grid, 0, len(f.Sheets))
	for _, sheet := range f.Sheets {
		grids = append(grids, FromSheet(sheet))
	}
	return grids, nil
}

// FromSheet converts a decoded sheet into a typed grid.
func FromSheet(sheet *xlsx.Sheet) *Grid {
	rows := make([][]CellValue, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]CellValue, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = fromCell(cell)
		}
		rows = append(rows, cells)
	}
	return NewGrid(sheet.Name, rows)
}

func fromCell(c *xlsx.Cell) CellValue {
	s := c.String()
	if strings.TrimSpace(s) == "" {
		return CellValue{}
	}

	switch c.Type() {
	case xlsx.CellTypeNumeric, xlsx.CellTypeDate:
		if f, err := c.Float(); err == nil {
			return Number(f)
		}
	case xlsx.CellTypeBool:
		if c.Bool() {
			return Number(1)
		}
		return Number(0)
	}
	return Text(s)
}
