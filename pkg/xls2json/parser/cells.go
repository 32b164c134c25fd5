package parser

import (
	"math"
	"strconv"
	"time"

	"github.com/robarros/parser-json/pkg/xls2json/models"
)

// DateLayout is the string form of date cells in the output.
const DateLayout = "2006-01-02 15:04:05"

// TimeLayout is the string form of time-of-day cells in the output.
const TimeLayout = "15:04:05"

// parseValue infers a typed value from a formatted cell string.
// Empty strings are null; integers and decimals become numbers;
// everything else stays a string.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Null()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Number(f)
	}
	return models.String(s)
}

// formatDate renders t as a date cell string, rounded to the second.
func formatDate(t time.Time) models.Value {
	return models.String(t.Round(time.Second).Format(DateLayout))
}

// formatSerial renders the date serial that converted to t. A serial below
// one day has no date part and renders as a time of day.
func formatSerial(t time.Time, serial float64) models.Value {
	if serial >= 0 && serial < 1 {
		return models.String(t.Round(time.Second).Format(TimeLayout))
	}
	return formatDate(t)
}

// isBlankRow reports whether every cell in row is null.
func isBlankRow(row []models.Value) bool {
	for _, v := range row {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

// cellAt returns row[col], or null when the row is shorter.
func cellAt(row []models.Value, col int) models.Value {
	if col < len(row) {
		return row[col]
	}
	return models.Null()
}

// setCell stores v at grid[r][c], growing the grid as needed.
func setCell(grid [][]models.Value, r, c int, v models.Value) [][]models.Value {
	for len(grid) <= r {
		grid = append(grid, nil)
	}
	row := grid[r]
	for len(row) <= c {
		row = append(row, models.Null())
	}
	row[c] = v
	grid[r] = row
	return grid
}
