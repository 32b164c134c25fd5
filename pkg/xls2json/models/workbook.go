package models

// WorkbookData represents a loaded workbook with its sheets in file order.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in the order they appear in the file.
	Sheets []SheetData `json:"sheets"`
}

// SheetNames returns the sheet names in file order.
func (w *WorkbookData) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}
