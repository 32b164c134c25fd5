package xls2json

import (
	"fmt"
	"strings"

	"github.com/robarros/parser-json/pkg/xls2json/models"
	"github.com/robarros/parser-json/pkg/xls2json/output"
	"github.com/robarros/parser-json/pkg/xls2json/parser"
	"github.com/robarros/parser-json/pkg/xls2json/transform"
	"github.com/rs/zerolog"
)

// openWorkbook loads the input workbook.
var openWorkbook = parser.Open

// SheetSummary describes how one sheet was converted.
type SheetSummary struct {
	Name string
	// Columns are the normalized column names.
	Columns []string
	// Rows is the number of data rows read, before filtering.
	Rows int
	// Records is the number of records written, after filtering.
	Records int
	// Filtered is true when the time filter was applied to this sheet.
	Filtered bool
	// Err is the read error for a sheet that was output empty.
	Err error
}

// Result is the outcome of a successful conversion.
type Result struct {
	InputPath  string
	OutputPath string
	// Sheets summarizes each sheet in file order.
	Sheets []SheetSummary
	// Warnings lists recoverable conditions in the order they occurred.
	Warnings []Warning
	// Document is the data that was written.
	Document output.Document
}

// Records returns the total number of records written.
func (r *Result) Records() int {
	return r.Document.Records()
}

// Convert reads the workbook at inputPath, lower-cases its headers and
// string cells, applies the optional time filter and writes the JSON
// document. No file is written when an error is returned; the error is a
// *ConversionError matching ErrInputNotFound, ErrInvalidInputType,
// ErrParseFailure or ErrWriteFailure.
func Convert(inputPath string, opts Options) (res *Result, err error) {
	log := opts.logger()
	stage := StageValidating

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, NewConversionError(stage, inputPath, stageKind(stage), fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}

	stage = StageLoading
	log.Info().Str("file", inputPath).Msg("reading workbook")
	if opts.FilterTime != "" {
		log.Info().Str("time", opts.FilterTime).Msg("filter active: only records of this time are kept")
	}

	wb, err := openWorkbook(inputPath)
	if err != nil {
		return nil, NewConversionError(stage, inputPath, ErrParseFailure, err)
	}
	log.Info().Strs("sheets", wb.SheetNames()).Msg("sheets found")

	stage = StageProcessing
	res = &Result{InputPath: inputPath}
	sheets := processSheets(wb, opts, res)

	doc := output.Build(sheets, opts.Keyed)
	total := doc.Records()
	if opts.FilterTime != "" {
		log.Info().Str("time", opts.FilterTime).Int("records", total).Msg("records matching filter")
	}
	if total == 0 {
		msg := "no data to save; the JSON file will contain no records"
		if opts.FilterTime != "" {
			msg = fmt.Sprintf("no records found for time %q in the whole file; check the time name", opts.FilterTime)
		}
		res.warn(log, Warning{Kind: WarnEmptyResult, Message: msg})
	}

	stage = StageSerializing
	data, err := output.ToJSON(doc)
	if err != nil {
		return nil, NewConversionError(stage, inputPath, ErrWriteFailure, err)
	}

	stage = StageWriting
	outPath := opts.OutputPath
	if outPath == "" {
		outPath = output.DefaultPath(inputPath)
	}
	log.Info().Str("file", outPath).Msg("saving JSON")
	if err := output.WriteFile(outPath, data); err != nil {
		return nil, NewConversionError(stage, outPath, ErrWriteFailure, err)
	}

	res.OutputPath = outPath
	res.Document = doc
	log.Info().Str("file", outPath).Int("records", doc.Records()).Msg("conversion completed")
	return res, nil
}

// processSheets normalizes and filters every sheet, recording summaries and
// warnings on res. Sheet-level problems never abort the run.
func processSheets(wb *models.WorkbookData, opts Options, res *Result) []models.SheetData {
	log := opts.logger()
	norm := transform.NewNormalizer()
	column := norm.String(opts.filterColumn())
	want := norm.String(opts.FilterTime)

	sheets := make([]models.SheetData, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		sheetLog := log.With().Str("sheet", sheet.Name).Logger()
		sheetLog.Info().Msg("processing sheet")

		if sheet.Err != nil {
			res.warn(sheetLog, Warning{
				Kind:    WarnSheetReadFailure,
				Sheet:   sheet.Name,
				Message: fmt.Sprintf("could not be read, output as empty: %v", sheet.Err),
			})
			sheets = append(sheets, emptySheet(sheet))
			res.Sheets = append(res.Sheets, SheetSummary{Name: sheet.Name, Columns: []string{}, Err: sheet.Err})
			continue
		}

		out := norm.Sheet(sheet)
		summary := SheetSummary{Name: sheet.Name, Columns: out.Columns, Rows: len(out.Records)}

		if len(out.Records) == 0 {
			res.warn(sheetLog, Warning{Kind: WarnEmptySheet, Sheet: sheet.Name, Message: "sheet is empty"})
			sheets = append(sheets, out)
			res.Sheets = append(res.Sheets, summary)
			continue
		}

		sheetLog.Info().
			Int("rows", len(out.Records)).
			Int("columns", len(out.Columns)).
			Str("column_names", strings.Join(out.Columns, ", ")).
			Msg("sheet dimensions")

		if opts.FilterTime != "" {
			fr := transform.Filter(out, column, want)
			if fr.ColumnMissing {
				res.warn(sheetLog, Warning{
					Kind:    WarnFilterColumnMissing,
					Sheet:   sheet.Name,
					Message: fmt.Sprintf("column %q not found, keeping all records", column),
				})
			} else {
				sheetLog.Info().
					Int("before", fr.Before).
					Int("after", fr.After).
					Str("time", opts.FilterTime).
					Msg("filter applied")
				if fr.After == 0 {
					res.warn(sheetLog, Warning{
						Kind:    WarnEmptyResult,
						Sheet:   sheet.Name,
						Message: fmt.Sprintf("no records found for time %q in this sheet", opts.FilterTime),
					})
				}
			}
			out = fr.Sheet
			summary.Filtered = fr.Applied
		}

		summary.Records = len(out.Records)
		sheets = append(sheets, out)
		res.Sheets = append(res.Sheets, summary)
	}
	return sheets
}

func (r *Result) warn(log zerolog.Logger, w Warning) {
	r.Warnings = append(r.Warnings, w)
	log.Warn().Str("kind", string(w.Kind)).Msg(w.Message)
}

func emptySheet(sheet models.SheetData) models.SheetData {
	return models.SheetData{
		Name:    sheet.Name,
		Columns: []string{},
		Records: []models.Record{},
		Err:     sheet.Err,
	}
}

// stageKind maps a stage to the sentinel reported for an unexpected failure in it.
func stageKind(stage Stage) error {
	switch stage {
	case StageValidating:
		return ErrInvalidInputType
	case StageLoading, StageProcessing:
		return ErrParseFailure
	default:
		return ErrWriteFailure
	}
}
