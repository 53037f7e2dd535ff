package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Close Approaches"

// WriteXLSX writes the results to a single-sheet workbook with a bold
// header, fixed-precision number formats, and a tinted fill on rows whose
// NEO is flagged potentially hazardous.
func WriteXLSX(results Results, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export: new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	hazardStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFE0CC"}},
	})
	if err != nil {
		return fmt.Errorf("export: hazard style: %w", err)
	}

	for i, col := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	f.SetCellStyle(sheetName, "A1", endHeader, headerStyle)

	rowNum := 1
	for ca, err := range results {
		if err != nil {
			return err
		}
		rowNum++

		row := flatten(ca)
		for i, col := range Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			v := row[col]
			if d, ok := v.(float64); ok && math.IsNaN(d) {
				v = "nan"
			}
			f.SetCellValue(sheetName, cell, v)
		}

		if ca.NEO.Hazardous {
			start, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(Columns), rowNum)
			f.SetCellStyle(sheetName, start, end, hazardStyle)
		}
	}

	for i := range Columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
