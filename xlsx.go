package xlgrid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Column widths in characters.
const (
	minSheetColWidth = 8
	maxSheetColWidth = 60
)

func readXLSX(path string, o *Options) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := o.sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func writeXLSXFile(path string, g *Grid, o *Options) error {
	f, err := newXLSX(g, o)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// newXLSX builds a single-sheet workbook holding the headers in row 1 and
// the data rows below.
func newXLSX(g *Grid, o *Options) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := defaultSheet
	if o.sheet != "" && o.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, o.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("name sheet %q: %w", o.sheet, err)
		}
		sheet = o.sheet
	}

	if err := writeSheetRow(f, sheet, 0, g.headers); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range g.rows {
		if err := writeSheetRow(f, sheet, i+1, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := finishSheet(f, sheet, g, o); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// finishSheet runs once all values are written: it sizes the columns,
// freezes the header row and, with WithHyperlinks, links URL cells.
func finishSheet(f *excelize.File, sheet string, g *Grid, o *Options) error {
	if g.ColumnCount() == 0 {
		return nil
	}
	if err := fitColumns(f, sheet, g); err != nil {
		return err
	}
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}
	if o.links {
		return linkURLs(f, sheet, g)
	}
	return nil
}

// fitColumns sizes each column to its longest value, header included.
func fitColumns(f *excelize.File, sheet string, g *Grid) error {
	for c, h := range g.headers {
		w := utf8.RuneCountInString(h)
		for _, row := range g.rows {
			w = max(w, utf8.RuneCountInString(row[c]))
		}
		name := ColToName(c)
		width := float64(min(max(w+2, minSheetColWidth), maxSheetColWidth))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}
	return nil
}

func linkURLs(f *excelize.File, sheet string, g *Grid) error {
	for r, row := range g.rows {
		for c, v := range row {
			if !isURL(v) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellHyperLink(sheet, cell, v, "External"); err != nil {
				return fmt.Errorf("link %s: %w", cell, err)
			}
		}
	}
	return nil
}

func isURL(s string) bool {
	for _, p := range []string{"http://", "https://", "mailto:"} {
		if len(s) > len(p) && strings.EqualFold(s[:len(p)], p) {
			return !strings.ContainsAny(s, " \t\n")
		}
	}
	return false
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write row %d: %w", row+1, err)
	}
	return nil
}
