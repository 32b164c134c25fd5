package transform

import "github.com/robarros/parser-json/pkg/xls2json/models"

// DefaultFilterColumn is the column matched by the team filter.
const DefaultFilterColumn = "time"

// FilterResult describes the outcome of filtering one sheet.
type FilterResult struct {
	// Sheet is the filtered sheet.
	Sheet models.SheetData
	// Applied is true when the sheet had the filter column.
	Applied bool
	// ColumnMissing is true when the sheet lacked the filter column and
	// was returned unfiltered.
	ColumnMissing bool
	// Before and After are the record counts around filtering.
	Before int
	After  int
}

// Filter keeps the records whose column value is the string want. Both
// column and want must already be normalized. Surviving records keep their
// order. A sheet without the column is returned unchanged.
func Filter(sheet models.SheetData, column, want string) FilterResult {
	res := FilterResult{
		Sheet:  sheet,
		Before: len(sheet.Records),
		After:  len(sheet.Records),
	}

	if !sheet.HasColumn(column) {
		res.ColumnMissing = true
		return res
	}

	kept := make([]models.Record, 0, len(sheet.Records))
	for _, rec := range sheet.Records {
		v, ok := rec.Get(column)
		if !ok {
			continue
		}
		if s, isStr := v.Str(); isStr && s == want {
			kept = append(kept, rec)
		}
	}

	res.Sheet.Records = kept
	res.Applied = true
	res.After = len(kept)
	return res
}
