package models

// SheetData represents the rows of a single sheet.
type SheetData struct {
	// Name is the sheet name as stored in the workbook.
	Name string `json:"name"`
	// Columns holds the header names in column order.
	Columns []string `json:"columns"`
	// Records holds one entry per data row, in sheet order.
	Records []Record `json:"records"`
	// Err is set when the sheet could not be read. Columns and Records
	// are empty in that case.
	Err error `json:"-"`
}

// HasColumn reports whether name is one of the sheet's columns.
func (s SheetData) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}
