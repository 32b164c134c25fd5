package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/robarros/parser-json/pkg/xls2json/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOpen_MultipleSheets(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Time"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alpha", "Red"}))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	_, err = f.NewSheet("Blank")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Second", "B2", &[]any{"Score"}))
	require.NoError(t, f.SetSheetRow("Second", "B3", &[]any{7}))

	path := filepath.Join(t.TempDir(), "book.xlsm")
	require.NoError(t, f.SaveAs(path))

	wb, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "book.xlsm", wb.BookName)
	require.Equal(t, []string{"Sheet1", "Second", "Blank"}, wb.SheetNames())

	assert.Len(t, wb.Sheets[0].Records, 1)

	second := wb.Sheets[1]
	assert.Equal(t, []string{"Unnamed: 0", "Score"}, second.Columns)
	require.Len(t, second.Records, 1)
	score, _ := second.Records[0].Get("Score")
	assert.Equal(t, models.Number(7), score)

	blank := wb.Sheets[2]
	assert.Empty(t, blank.Records)
	assert.NoError(t, blank.Err)
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := Open("data.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen_CorruptWorkbook(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".xls", ".xlsx", ".xlsb"} {
		path := filepath.Join(t.TempDir(), "broken"+ext)
		require.NoError(t, os.WriteFile(path, []byte("this is not a workbook"), 0644))

		_, err := Open(path)
		assert.Error(t, err, "Open(%s)", ext)
	}
}

func TestOpen_SheetReadFailureKeepsOtherSheets(t *testing.T) {
	t.Parallel()

	load := func(string) ([]rawSheet, error) {
		return []rawSheet{
			readSheet("Broken", func() ([][]models.Value, error) { panic("bad record") }),
			{name: "Good", grid: [][]models.Value{row(models.String("time")), row(models.String("red"))}},
		}, nil
	}

	wb, err := openWith("book.xlsx", load)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)

	broken := wb.Sheets[0]
	var sheetErr *SheetError
	require.ErrorAs(t, broken.Err, &sheetErr)
	assert.Equal(t, "Broken", sheetErr.SheetName)
	assert.Empty(t, broken.Records)
	assert.NotNil(t, broken.Records)

	assert.NoError(t, wb.Sheets[1].Err)
	assert.Len(t, wb.Sheets[1].Records, 1)
}

func TestOpen_NoSheets(t *testing.T) {
	t.Parallel()

	_, err := openWith("book.xls", func(string) ([]rawSheet, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestSupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.xls", true},
		{"a.XLSX", true},
		{"a.xlsm", true},
		{"dir/a.xlsb", true},
		{"a.csv", false},
		{"a.json", false},
		{"xlsx", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Supported(tt.path), "Supported(%q)", tt.path)
	}
}

func TestReadSheet_RecoversPanic(t *testing.T) {
	t.Parallel()

	rs := readSheet("Bad", func() ([][]models.Value, error) {
		panic("boom")
	})

	assert.Equal(t, "Bad", rs.name)
	assert.Error(t, rs.err)
	assert.Nil(t, rs.grid)
}

func TestSheetError(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad record")
	err := error(&SheetError{SheetName: "Data", Err: inner})

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `read sheet "Data": bad record`, err.Error())
}
