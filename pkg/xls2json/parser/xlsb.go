package parser

import (
	"fmt"
	"os"

	"github.com/TsubasaBE/go-xlsb"
	"github.com/TsubasaBE/go-xlsb/workbook"
	"github.com/robarros/parser-json/pkg/xls2json/models"
)

// loadXLSB reads binary .xlsb workbooks. Cells arrive typed; numbers with a
// date style are converted to date strings.
func loadXLSB(path string) ([]rawSheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	wb, err := workbook.OpenReader(file, info.Size())
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	toValue := func(v any, style int) models.Value {
		switch v := v.(type) {
		case nil:
			return models.Null()
		case string:
			if v == "" {
				return models.Null()
			}
			return models.String(v)
		case bool:
			return models.Bool(v)
		case float64:
			if wb.Styles.IsDate(style) {
				if t, err := xlsb.ConvertDateEx(v, wb.Date1904); err == nil {
					return formatSerial(t, v)
				}
			}
			return models.Number(v)
		case int:
			return models.Number(float64(v))
		default:
			return models.String(fmt.Sprint(v))
		}
	}

	var sheets []rawSheet
	for idx, sheetName := range wb.Sheets() {
		sheets = append(sheets, readSheet(sheetName, func() ([][]models.Value, error) {
			// Sheet indexes are 1-based.
			ws, err := wb.Sheet(idx + 1)
			if err != nil {
				return nil, err
			}
			var grid [][]models.Value
			for row := range ws.Rows(true) {
				for _, cell := range row {
					grid = setCell(grid, cell.R, cell.C, toValue(cell.V, cell.Style))
				}
			}
			return grid, nil
		}))
	}
	return sheets, nil
}
