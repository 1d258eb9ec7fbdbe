package xlgrid

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// readFunc returns every row of one sheet, header row first.
type readFunc func(path string, o *Options) ([][]string, error)

// writeFunc writes headers followed by rows to path.
type writeFunc func(path string, g *Grid, o *Options) error

var readers = map[string]readFunc{
	".xlsx": readXLSX,
	".xlsm": readXLSX,
	".xls":  readXLS,
	".csv":  readCSV,
	".txt":  readCSV,
}

var writers = map[string]writeFunc{
	".xlsx": writeXLSXFile,
	".xlsm": writeXLSXFile,
	".csv":  writeCSVFile,
	".txt":  writeCSVFile,
}

// ReadFile loads the first sheet (or the one chosen with WithSheet) of a
// spreadsheet file into a new Grid. The first row becomes the headers and
// every value is read as text. The reader is picked by file extension.
func ReadFile(path string, opts ...Option) (*Grid, error) {
	o := buildOptions(opts)
	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		return nil, fmt.Errorf("read %q: %w: %q", path, ErrUnsupportedFormat, ext)
	}

	raw, err := read(path, o)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	if len(raw) == 0 {
		o.logger.Debug("file has no rows", "path", path)
		return NewGrid(), nil
	}

	g := NewGridFromRows(raw[0], raw[1:])
	o.logger.Info("loaded table", "path", path, "rows", g.RowCount(), "columns", g.ColumnCount())
	return g, nil
}

// ImportFile is ReadFile for interactive use: instead of failing it logs a
// warning and returns an empty Grid, so the editor stays usable.
func ImportFile(path string, opts ...Option) *Grid {
	g, _ := importFile(path, opts)
	return g
}

// importFile always returns a usable Grid. The error is the read failure
// of a file that exists; a missing file is a new, empty table.
func importFile(path string, opts []Option) (*Grid, error) {
	o := buildOptions(opts)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		o.logger.Debug("file does not exist yet, starting with an empty table", "path", path)
		return NewGrid(), nil
	}
	g, err := ReadFile(path, opts...)
	if err != nil {
		o.logger.Warn("import failed, starting with an empty table", "path", path, "err", err)
		return NewGrid(), err
	}
	return g, nil
}

// WriteFile saves g to path, headers first, in the format implied by the
// extension. Empty cells are written as empty strings.
func WriteFile(path string, g *Grid, opts ...Option) error {
	o := buildOptions(opts)
	ext := strings.ToLower(filepath.Ext(path))
	write, ok := writers[ext]
	if !ok {
		return fmt.Errorf("write %q: %w: %q", path, ErrUnsupportedFormat, ext)
	}
	if err := write(path, g, o); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	o.logger.Info("saved table", "path", path, "rows", g.RowCount(), "columns", g.ColumnCount())
	return nil
}

// Write encodes g as an xlsx workbook to w.
func Write(w io.Writer, g *Grid, opts ...Option) error {
	o := buildOptions(opts)
	f, err := newXLSX(g, o)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
