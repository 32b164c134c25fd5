package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/robarros/parser-json/pkg/xls2json/models"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads .xlsx and .xlsm workbooks with excelize.
func loadXLSX(path string) ([]rawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x := &xlsxTyper{f: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		x.date1904 = *props.Date1904
	}

	var sheets []rawSheet
	for _, sheetName := range f.GetSheetList() {
		sheets = append(sheets, readSheet(sheetName, func() ([][]models.Value, error) {
			return x.extractCells(sheetName)
		}))
	}
	return sheets, nil
}

// xlsxTyper maps raw excelize cell strings to typed values.
type xlsxTyper struct {
	f          *excelize.File
	date1904   bool
	dateStyles map[int]bool
}

// extractCells returns the typed grid of a sheet. Row and column indexes
// are 0-based.
func (x *xlsxTyper) extractCells(sheetName string) ([][]models.Value, error) {
	rows, err := x.f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		values := make([]models.Value, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			values[colIdx] = x.typedValue(sheetName, cellName, cellValue)
		}
		grid[rowIdx] = values
	}
	return grid, nil
}

func (x *xlsxTyper) typedValue(sheetName, cellName, raw string) models.Value {
	cellType, err := x.f.GetCellType(sheetName, cellName)
	if err != nil {
		return parseValue(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.String(raw)
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return formatDate(t)
		}
		return models.String(raw)
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.String(raw)
	}
	if x.isDateCell(sheetName, cellName) {
		if t, err := excelize.ExcelDateToTime(num, x.date1904); err == nil {
			return formatSerial(t, num)
		}
	}
	return models.Number(num)
}

// isDateCell reports whether the cell's number format renders a date or time.
func (x *xlsxTyper) isDateCell(sheetName, cellName string) bool {
	styleID, err := x.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := x.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := x.f.GetStyle(styleID); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		isDate = isDateFormat(style.NumFmt, custom)
	}
	x.dateStyles[styleID] = isDate
	return isDate
}
