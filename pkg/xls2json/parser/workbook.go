// Package parser provides spreadsheet file parsing utilities.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/robarros/parser-json/pkg/xls2json/models"
)

// ErrUnsupportedFormat indicates the file extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrNoSheets indicates the workbook contains no sheets.
var ErrNoSheets = errors.New("no sheets found in workbook")

// SheetError represents a failure to read one sheet of a workbook.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("read sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// rawSheet is a sheet as extracted by a format loader, before headers
// are applied.
type rawSheet struct {
	name string
	grid [][]models.Value
	err  error
}

// loader reads every sheet of a workbook into memory and releases the file
// before returning.
type loader func(path string) ([]rawSheet, error)

var loaders = map[string]loader{
	".xlsx": loadXLSX,
	".xlsm": loadXLSX,
	".xls":  loadXLS,
	".xlsb": loadXLSB,
}

// Extensions returns the accepted file extensions.
func Extensions() []string {
	return []string{".xls", ".xlsx", ".xlsm", ".xlsb"}
}

// Supported reports whether path has an accepted extension (case-insensitive).
func Supported(path string) bool {
	_, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Open loads the workbook at path. Sheets that fail to read are kept, empty,
// with Err set to a *SheetError.
func Open(path string) (*models.WorkbookData, error) {
	load, ok := loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return openWith(path, load)
}

func openWith(path string, load loader) (wb *models.WorkbookData, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("decode workbook: %v", r)
		}
	}()

	raw, err := load(path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoSheets
	}

	sheets := make([]models.SheetData, 0, len(raw))
	for _, rs := range raw {
		if rs.err != nil {
			sheets = append(sheets, models.SheetData{
				Name:    rs.name,
				Columns: []string{},
				Records: []models.Record{},
				Err:     &SheetError{SheetName: rs.name, Err: rs.err},
			})
			continue
		}
		sheets = append(sheets, BuildSheet(rs.name, rs.grid))
	}

	return &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}

// readSheet runs read and converts a panic into an error so one broken
// sheet does not abort the workbook.
func readSheet(name string, read func() ([][]models.Value, error)) (rs rawSheet) {
	rs.name = name
	defer func() {
		if r := recover(); r != nil {
			rs.grid, rs.err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	rs.grid, rs.err = read()
	return rs
}
