// Package output serializes converted sheets to JSON files.
package output

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/robarros/parser-json/pkg/xls2json/models"
)

// Document is the JSON-ready result of a conversion: a flat record array
// for a single sheet, or an object keyed by sheet name otherwise.
type Document struct {
	// Sheets holds the converted sheets in file order.
	Sheets []models.SheetData
	// Keyed is true when the document is an object keyed by sheet name.
	Keyed bool
}

// Build assembles a Document. A single sheet gives a flat array unless
// keyed is set.
func Build(sheets []models.SheetData, keyed bool) Document {
	return Document{
		Sheets: sheets,
		Keyed:  keyed || len(sheets) != 1,
	}
}

// Records returns the total number of records across all sheets.
func (d Document) Records() int {
	n := 0
	for _, s := range d.Sheets {
		n += len(s.Records)
	}
	return n
}

// ToJSON serializes doc with keys in column order, sheets in file order,
// 2-space indentation and non-ASCII text written literally.
func ToJSON(doc Document) ([]byte, error) {
	var compact bytes.Buffer
	if doc.Keyed {
		compact.WriteByte('{')
		for i, sheet := range doc.Sheets {
			if i > 0 {
				compact.WriteByte(',')
			}
			key, err := marshalNoEscape(sheet.Name)
			if err != nil {
				return nil, err
			}
			compact.Write(key)
			compact.WriteByte(':')
			if err := writeRecords(&compact, sheet.Records); err != nil {
				return nil, err
			}
		}
		compact.WriteByte('}')
	} else if err := writeRecords(&compact, doc.Sheets[0].Records); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeRecords(buf *bytes.Buffer, records []models.Record) error {
	buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := rec.MarshalJSON()
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DefaultPath returns input with its extension replaced by ".json".
func DefaultPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
}
