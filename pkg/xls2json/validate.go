package xls2json

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robarros/parser-json/pkg/xls2json/parser"
)

// ValidateInput checks that path exists and is a regular, non-empty file
// with an accepted spreadsheet extension.
func ValidateInput(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConversionError(StageValidating, path, ErrInputNotFound, nil)
	}
	if err != nil {
		return NewConversionError(StageValidating, path, ErrInvalidInputType, err)
	}

	if !info.Mode().IsRegular() {
		return NewConversionError(StageValidating, path, ErrInvalidInputType,
			errors.New("not a regular file"))
	}

	if !parser.Supported(path) {
		return NewConversionError(StageValidating, path, ErrInvalidInputType,
			fmt.Errorf("extension %q is not supported (valid: %s)",
				strings.ToLower(filepath.Ext(path)), strings.Join(parser.Extensions(), ", ")))
	}

	if info.Size() == 0 {
		return NewConversionError(StageValidating, path, ErrInvalidInputType,
			errors.New("file is empty"))
	}

	return nil
}
