package xls2json

import (
	"errors"
	"fmt"
)

// ErrInputNotFound indicates the input path does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ErrInvalidInputType indicates the input is not a regular, non-empty file
// with an accepted spreadsheet extension.
var ErrInvalidInputType = errors.New("invalid input file")

// ErrParseFailure indicates the workbook could not be opened or decoded.
var ErrParseFailure = errors.New("invalid spreadsheet")

// ErrWriteFailure indicates the JSON document could not be serialized or written.
var ErrWriteFailure = errors.New("write output")

// Stage is a step of a conversion run.
type Stage string

const (
	StageValidating  Stage = "validating"
	StageLoading     Stage = "loading"
	StageProcessing  Stage = "processing"
	StageSerializing Stage = "serializing"
	StageWriting     Stage = "writing"
)

// ConversionError represents a fatal error during conversion. It matches
// one of the sentinel errors above via errors.Is.
type ConversionError struct {
	Stage Stage
	Path  string
	Kind  error
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Stage, e.Path, e.Kind, e.Err)
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewConversionError creates a new ConversionError.
func NewConversionError(stage Stage, path string, kind, err error) *ConversionError {
	return &ConversionError{
		Stage: stage,
		Path:  path,
		Kind:  kind,
		Err:   err,
	}
}

// WarningKind classifies a recoverable condition.
type WarningKind string

const (
	// WarnSheetReadFailure: a sheet could not be read and is output empty.
	WarnSheetReadFailure WarningKind = "sheet_read_failure"
	// WarnFilterColumnMissing: the sheet has no filter column and is output unfiltered.
	WarnFilterColumnMissing WarningKind = "filter_column_missing"
	// WarnEmptyResult: the filter matched no records.
	WarnEmptyResult WarningKind = "empty_result"
	// WarnEmptySheet: the sheet has no data rows.
	WarnEmptySheet WarningKind = "empty_sheet"
)

// Warning is a recoverable condition reported during conversion.
// Sheet is empty for workbook-level warnings.
type Warning struct {
	Kind    WarningKind
	Sheet   string
	Message string
}

func (w Warning) String() string {
	if w.Sheet == "" {
		return w.Message
	}
	return fmt.Sprintf("sheet %q: %s", w.Sheet, w.Message)
}
