package parser

import (
	"fmt"
	"io"

	"github.com/robarros/parser-json/pkg/xls2json/models"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// loadXLS reads legacy BIFF .xls workbooks with xlrd. The file is read into
// memory whole, so no handle outlives the call.
func loadXLS(path string) ([]rawSheet, error) {
	book, err := xlrd.OpenWorkbook(path, &xlrd.OpenWorkbookOptions{
		Logfile:        io.Discard,
		FormattingInfo: true,
	})
	if err != nil {
		return nil, err
	}
	defer book.ReleaseResources()

	x := &xlsTyper{book: book}

	var sheets []rawSheet
	for idx, sheetName := range book.SheetNames() {
		sheets = append(sheets, readSheet(sheetName, func() ([][]models.Value, error) {
			sheet, err := book.SheetByIndex(idx)
			if err != nil {
				return nil, err
			}
			if sheet == nil {
				return nil, fmt.Errorf("sheet %d was not loaded", idx)
			}
			return x.extractCells(sheet), nil
		}))
	}
	return sheets, nil
}

// xlsTyper maps xlrd cell types to typed values.
type xlsTyper struct {
	book *xlrd.Book
}

func (x *xlsTyper) extractCells(sheet *xlrd.Sheet) [][]models.Value {
	grid := make([][]models.Value, sheet.NRows)
	for rowx := range grid {
		values := make([]models.Value, sheet.NCols)
		for colx := range values {
			values[colx] = x.typedValue(
				sheet.CellType(rowx, colx),
				sheet.CellValue(rowx, colx),
				sheet.CellXFIndex(rowx, colx),
			)
		}
		grid[rowx] = values
	}
	return grid
}

func (x *xlsTyper) typedValue(ctype int, value any, xfIndex int) models.Value {
	switch ctype {
	case xlrd.XL_CELL_TEXT:
		s, _ := value.(string)
		if s == "" {
			return models.Null()
		}
		return models.String(s)
	case xlrd.XL_CELL_NUMBER, xlrd.XL_CELL_DATE:
		num, ok := toFloat(value)
		if !ok {
			return models.Null()
		}
		if ctype == xlrd.XL_CELL_DATE || x.isDateCell(xfIndex) {
			if t, err := xlrd.XldateAsDatetime(num, x.book.Datemode); err == nil {
				return formatSerial(t, num)
			}
		}
		return models.Number(num)
	case xlrd.XL_CELL_BOOLEAN:
		switch v := value.(type) {
		case bool:
			return models.Bool(v)
		case int:
			return models.Bool(v != 0)
		case byte:
			return models.Bool(v != 0)
		}
		return models.Null()
	case xlrd.XL_CELL_ERROR:
		return models.String(errorText(value))
	}
	return models.Null()
}

// isDateCell reports whether the cell's XF record points at a date or time
// number format.
func (x *xlsTyper) isDateCell(xfIndex int) bool {
	if xfIndex < 0 || xfIndex >= len(x.book.XFList) {
		return false
	}
	formatKey := x.book.XFList[xfIndex].FormatKey

	custom := ""
	if format := x.book.FormatMap[formatKey]; format != nil {
		custom = format.FormatString
	}
	if isDateFormat(formatKey, custom) {
		return true
	}
	return custom != "" && xlrd.IsDateFormatString(x.book, custom)
}

// errorText renders an error cell the way Excel displays it.
func errorText(value any) string {
	var code byte
	switch v := value.(type) {
	case byte:
		code = v
	case int:
		code = byte(v)
	default:
		return "#ERROR"
	}
	if text, ok := xlrd.ErrorTextFromCode[code]; ok {
		return text
	}
	return "#ERROR"
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
