package xlgrid

import (
	"fmt"

	"github.com/extrame/xls"
)

// readXLS reads a legacy BIFF workbook. Only reading is supported.
func readXLS(path string, o *Options) (rows [][]string, err error) {
	// The BIFF parser panics on some truncated files.
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("parse workbook: %v", p)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := wb.GetSheet(0)
	if o.sheet != "" {
		sheet = nil
		for i := 0; i < wb.NumSheets(); i++ {
			if s := wb.GetSheet(i); s != nil && s.Name == o.sheet {
				sheet = s
				break
			}
		}
		if sheet == nil {
			return nil, fmt.Errorf("sheet %q not found", o.sheet)
		}
	}
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no readable sheet")
	}

	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		// LastCol is one past the last cell.
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return trimTrailingEmpty(rows), nil
}

// trimTrailingEmpty drops blank rows after the last row that has a value.
func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && rowIsBlank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func rowIsBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
