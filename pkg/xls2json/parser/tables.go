package parser

import (
	"fmt"

	"github.com/robarros/parser-json/pkg/xls2json/models"
)

// BuildSheet turns a grid of cells into header columns and records.
// The first non-blank row is the header; blank rows are skipped and
// missing cells become null.
func BuildSheet(name string, grid [][]models.Value) models.SheetData {
	sheet := models.SheetData{
		Name:    name,
		Columns: []string{},
		Records: []models.Record{},
	}

	firstRow, lastRow, width := findDataBounds(grid)
	if firstRow < 0 {
		return sheet
	}

	sheet.Columns = headerNames(grid[firstRow], width)

	for rowIdx := firstRow + 1; rowIdx <= lastRow; rowIdx++ {
		row := grid[rowIdx]
		if isBlankRow(row) {
			continue
		}
		rec := models.NewRecord(width)
		for colIdx, col := range sheet.Columns {
			rec.Set(col, cellAt(row, colIdx))
		}
		sheet.Records = append(sheet.Records, rec)
	}

	return sheet
}

// findDataBounds returns the first and last non-blank row and the number
// of columns up to the last non-empty cell. firstRow is -1 for an empty grid.
func findDataBounds(grid [][]models.Value) (firstRow, lastRow, width int) {
	firstRow, lastRow = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsNull() {
				continue
			}
			if firstRow < 0 {
				firstRow = rowIdx
			}
			lastRow = rowIdx
			if colIdx+1 > width {
				width = colIdx + 1
			}
		}
	}

	return
}

// headerNames names each column from the header row. Empty headers are
// named "Unnamed: <index>" and repeated names get ".1", ".2", ... suffixes.
func headerNames(header []models.Value, width int) []string {
	names := make([]string, width)
	counts := make(map[string]int, width)

	for colIdx := 0; colIdx < width; colIdx++ {
		cell := cellAt(header, colIdx)
		base := cell.Text()
		if cell.IsNull() {
			base = fmt.Sprintf("Unnamed: %d", colIdx)
		}

		name := base
		if n, dup := counts[base]; dup {
			for {
				name = fmt.Sprintf("%s.%d", base, n)
				n++
				if _, taken := counts[name]; !taken {
					break
				}
			}
			counts[base] = n
		}
		counts[name] = 1
		names[colIdx] = name
	}

	return names
}
