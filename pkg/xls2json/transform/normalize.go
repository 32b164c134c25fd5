// Package transform normalizes sheet text and filters records.
package transform

import (
	"github.com/robarros/parser-json/pkg/xls2json/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer lower-cases column names and string cells.
// A Normalizer is not safe for concurrent use.
type Normalizer struct {
	caser cases.Caser
}

// NewNormalizer returns a Normalizer using language-neutral Unicode rules.
func NewNormalizer() *Normalizer {
	return &Normalizer{caser: cases.Lower(language.Und)}
}

// String lower-cases s.
func (n *Normalizer) String(s string) string {
	return n.caser.String(s)
}

// Value lower-cases string values and returns every other kind unchanged.
func (n *Normalizer) Value(v models.Value) models.Value {
	if s, ok := v.Str(); ok {
		return models.String(n.String(s))
	}
	return v
}

// Sheet returns a copy of sheet with lower-cased columns, keys and string
// values. Columns that collide after lower-casing collapse into one key at
// the position of the first; the later column's value wins.
func (n *Normalizer) Sheet(sheet models.SheetData) models.SheetData {
	out := models.SheetData{
		Name:    sheet.Name,
		Columns: make([]string, 0, len(sheet.Columns)),
		Records: make([]models.Record, 0, len(sheet.Records)),
		Err:     sheet.Err,
	}

	seen := make(map[string]bool, len(sheet.Columns))
	for _, col := range sheet.Columns {
		lower := n.String(col)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out.Columns = append(out.Columns, lower)
	}

	for _, rec := range sheet.Records {
		lowered := models.NewRecord(len(out.Columns))
		for _, f := range rec.Fields() {
			lowered.Set(n.String(f.Key), n.Value(f.Value))
		}
		out.Records = append(out.Records, lowered)
	}

	return out
}
