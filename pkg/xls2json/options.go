// Package xls2json converts spreadsheet workbooks to normalized JSON.
package xls2json

import (
	"github.com/robarros/parser-json/pkg/xls2json/transform"
	"github.com/rs/zerolog"
)

// Options configures conversion behavior.
type Options struct {
	// OutputPath is the JSON destination.
	// If empty, defaults to the input path with a ".json" extension.
	OutputPath string
	// FilterTime keeps only records whose filter column equals this value,
	// compared case-insensitively. Empty disables filtering.
	FilterTime string
	// FilterColumn is the column FilterTime is matched against.
	// If empty, defaults to "time".
	FilterColumn string
	// Keyed always emits an object keyed by sheet name, even for a
	// single-sheet workbook.
	Keyed bool
	// Logger receives progress and warnings. If nil, nothing is logged.
	Logger *zerolog.Logger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		FilterColumn: transform.DefaultFilterColumn,
	}
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o Options) filterColumn() string {
	if o.FilterColumn == "" {
		return transform.DefaultFilterColumn
	}
	return o.FilterColumn
}
