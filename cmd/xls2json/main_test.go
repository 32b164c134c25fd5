package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robarros/parser-json/pkg/xls2json"
	"github.com/robarros/parser-json/pkg/xls2json/models"
	"github.com/robarros/parser-json/pkg/xls2json/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func teamsFile(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Time"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alpha", "Red"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Beta", "Blue"}))

	path := filepath.Join(t.TempDir(), "teams.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantInput  string
		wantTime   string
		wantOutput string
	}{
		{"input only", []string{"a.xlsx"}, "a.xlsx", "", ""},
		{"time filter", []string{"a.xlsx", "red"}, "a.xlsx", "red", ""},
		{"output path", []string{"a.xlsx", "out.json"}, "a.xlsx", "", "out.json"},
		{"output path upper-case extension", []string{"a.xlsx", "OUT.JSON"}, "a.xlsx", "", "OUT.JSON"},
		{"time and output", []string{"a.xlsx", "red", "out.json"}, "a.xlsx", "red", "out.json"},
		{"third argument always output", []string{"a.xlsx", "first.json", "second.txt"}, "a.xlsx", "", "second.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input, filterTime, outputPath := parseArgs(tt.args)
			assert.Equal(t, tt.wantInput, input)
			assert.Equal(t, tt.wantTime, filterTime)
			assert.Equal(t, tt.wantOutput, outputPath)
		})
	}
}

func TestRun_ConvertsWithTimeFilter(t *testing.T) {
	t.Parallel()

	input := teamsFile(t)
	outPath := filepath.Join(filepath.Dir(input), "red.json")

	_, stderr, err := execute(t, input, "RED", outPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "conversion completed")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"alpha\",\n    \"time\": \"red\"\n  }\n]", string(data))
}

func TestRun_FlagsOverridePositional(t *testing.T) {
	t.Parallel()

	input := teamsFile(t)
	outPath := filepath.Join(filepath.Dir(input), "blue.json")

	_, _, err := execute(t, input, "red", "--time", "blue", "-o", outPath, "--keyed", "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"Sheet1\": ["))
	assert.Contains(t, string(data), `"name": "beta"`)
	assert.NotContains(t, string(data), `"alpha"`)
}

func TestRun_Preview(t *testing.T) {
	t.Parallel()

	input := teamsFile(t)

	stdout, _, err := execute(t, input, "--preview", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "JSON PREVIEW")
	assert.Contains(t, stdout, "Total records: 2")
	assert.Contains(t, stdout, "Columns (2): name, time")
	assert.Contains(t, stdout, "    - name: alpha")
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "teams.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,time\nalpha,red\n"), 0644))

	t.Run("missing argument", func(t *testing.T) {
		_, stderr, err := execute(t)
		require.Error(t, err)
		assert.Contains(t, stderr, "Usage:")
	})

	t.Run("missing file", func(t *testing.T) {
		_, stderr, err := execute(t, filepath.Join(dir, "nope.xlsx"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, xls2json.ErrInputNotFound))
		assert.Contains(t, stderr, "input file not found")
	})

	t.Run("time filter without file", func(t *testing.T) {
		_, stderr, err := execute(t, "RED")
		require.Error(t, err)
		assert.True(t, errors.Is(err, xls2json.ErrInputNotFound))
		assert.Contains(t, stderr, "looks like a time filter")
		assert.Contains(t, stderr, "xls2json jogadores.xlsx red")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := execute(t, csvPath)
		require.Error(t, err)
		assert.True(t, errors.Is(err, xls2json.ErrInvalidInputType))

		_, statErr := os.Stat(filepath.Join(dir, "teams.json"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid log format", func(t *testing.T) {
		_, stderr, err := execute(t, csvPath, "--log-format", "xml")
		require.Error(t, err)
		assert.Contains(t, stderr, "invalid log format")
	})
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	notFound := xls2json.NewConversionError(xls2json.StageValidating, "x", xls2json.ErrInputNotFound, nil)

	assert.Contains(t, failureMessage(notFound, "RED"), "looks like a time filter")
	assert.Contains(t, failureMessage(notFound, "missing.xlsx"), "input file not found")
	assert.Equal(t, "conversion failed", failureMessage(errors.New("boom"), "a.xlsx"))
}

func TestPreviewValue(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 60)

	assert.Equal(t, "None", previewValue(models.Null()))
	assert.Equal(t, "3", previewValue(models.Number(3)))
	assert.Equal(t, "True", previewValue(models.Bool(true)))
	assert.Equal(t, "short", previewValue(models.String("short")))
	assert.Equal(t, strings.Repeat("é", 47)+"...", previewValue(models.String(long)))
}

func TestWritePreview_MultipleSheets(t *testing.T) {
	t.Parallel()

	rec := models.NewRecord(1)
	rec.Set("name", models.String("x"))

	res := &xls2json.Result{
		Document: output.Build([]models.SheetData{
			{Name: "A", Records: []models.Record{rec}},
			{Name: "B", Records: []models.Record{}},
		}, false),
	}

	var buf bytes.Buffer
	writePreview(&buf, res)

	assert.Contains(t, buf.String(), `Sheet: "A"`)
	assert.Contains(t, buf.String(), `Sheet: "B"`)
	assert.Contains(t, buf.String(), "empty sheet")
}
