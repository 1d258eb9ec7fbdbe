package xlgrid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// letters builds a one-column grid whose rows hold the given values,
// handy for checking row order after moves.
func letters(vals ...string) *Grid {
	rows := make([][]string, len(vals))
	for i, v := range vals {
		rows[i] = []string{v}
	}
	return NewGridFromRows([]string{"Name"}, rows)
}

// column returns the values of column c from top to bottom.
func column(t *testing.T, g *Grid, c int) []string {
	t.Helper()
	out := make([]string, g.RowCount())
	for r := range out {
		v, err := g.Cell(r, c)
		require.NoError(t, err)
		out[r] = v
	}
	return out
}

// sampleGrid returns a small employee table:
//
//	Name   Dept         City
//	Alice  Engineering  NYC
//	Bob    Marketing    London
//	Carol  Engineering  NYC
func sampleGrid() *Grid {
	return NewGridFromRows(
		[]string{"Name", "Dept", "City"},
		[][]string{
			{"Alice", "Engineering", "NYC"},
			{"Bob", "Marketing", "London"},
			{"Carol", "Engineering", "NYC"},
		},
	)
}

// createWorkbook writes rows (header row first) into a fresh xlsx file
// under t.TempDir and returns its path.
func createWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// recorder collects grid changes.
type recorder struct {
	changes []Change
}

func (r *recorder) GridChanged(ch Change) { r.changes = append(r.changes, ch) }

func (r *recorder) kinds() []ChangeKind {
	out := make([]ChangeKind, len(r.changes))
	for i, ch := range r.changes {
		out[i] = ch.Kind
	}
	return out
}
