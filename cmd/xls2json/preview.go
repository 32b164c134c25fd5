package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/robarros/parser-json/pkg/xls2json"
	"github.com/robarros/parser-json/pkg/xls2json/models"
)

const (
	previewRecords  = 3
	previewValueMax = 50
)

// writePreview prints the record count, the columns and the first few
// records of each converted sheet.
func writePreview(w io.Writer, res *xls2json.Result) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nJSON PREVIEW\n%s\n", rule, rule)

	doc := res.Document
	if !doc.Keyed && len(doc.Sheets) == 1 {
		sheet := doc.Sheets[0]
		fmt.Fprintf(w, "\nStructure: flat array (no %q root)\n%s\n", sheet.Name, strings.Repeat("-", 50))
		writeSheetPreview(w, sheet.Records, "empty array")
		return
	}

	for _, sheet := range doc.Sheets {
		fmt.Fprintf(w, "\nSheet: %q\n%s\n", sheet.Name, strings.Repeat("-", 40))
		writeSheetPreview(w, sheet.Records, "empty sheet")
	}
}

func writeSheetPreview(w io.Writer, records []models.Record, emptyLabel string) {
	if len(records) == 0 {
		fmt.Fprintf(w, "  %s\n", emptyLabel)
		return
	}

	fmt.Fprintf(w, "Total records: %d\n", len(records))
	columns := records[0].Keys()
	fmt.Fprintf(w, "Columns (%d): %s\n", len(columns), strings.Join(columns, ", "))

	n := min(previewRecords, len(records))
	fmt.Fprintf(w, "\nFirst %d record(s):\n", n)
	for i, rec := range records[:n] {
		fmt.Fprintf(w, "\n  Record %d:\n", i+1)
		for _, f := range rec.Fields() {
			fmt.Fprintf(w, "    - %s: %s\n", f.Key, previewValue(f.Value))
		}
	}
}

// previewValue renders v for display, cut to previewValueMax characters.
func previewValue(v models.Value) string {
	s := v.Text()
	if v.IsNull() {
		s = "None"
	}
	if r := []rune(s); len(r) > previewValueMax {
		s = string(r[:previewValueMax-3]) + "..."
	}
	return s
}
