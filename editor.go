package xlgrid

import (
	"fmt"
	"log/slog"
)

// End and Last stand for "after the final row/column" when adding and
// "the final row/column" when removing.
const (
	End  = -1
	Last = -1
)

// Placement positions a new row or column relative to an existing one.
type Placement int

const (
	Above Placement = iota
	Below
)

// Before and After are the column spellings of Above and Below.
const (
	Before = Above
	After  = Below
)

// Editor applies relative row and column edits to a Grid and logs them.
type Editor struct {
	grid   *Grid
	logger *slog.Logger
}

// NewEditor creates an Editor over g. Only WithLogger is relevant here.
func NewEditor(g *Grid, opts ...Option) *Editor {
	o := buildOptions(opts)
	return &Editor{grid: g, logger: o.logger}
}

// Grid returns the grid being edited.
func (e *Editor) Grid() *Grid { return e.grid }

// AddRow inserts an empty row above or below row at, or appends one when
// at is End. It returns the index of the new row.
func (e *Editor) AddRow(at int, p Placement) (int, error) {
	target := at
	switch {
	case at == End:
		target = e.grid.RowCount()
	case p == Below:
		if at < 0 || at >= e.grid.RowCount() {
			return -1, fmt.Errorf("add row below %d: %w", at, ErrIndexOutOfBounds)
		}
		target = at + 1
	}
	if err := e.grid.InsertRow(target); err != nil {
		return -1, err
	}
	e.logger.Info("added row", "at", target, "rows", e.grid.RowCount())
	return target, nil
}

// RemoveRow deletes row at, or the final row when at is Last. On an empty
// grid it returns ErrEmpty and changes nothing.
func (e *Editor) RemoveRow(at int) error {
	if at == Last {
		at = e.grid.RowCount() - 1
	}
	if err := e.grid.RemoveRow(at); err != nil {
		return err
	}
	e.logger.Info("removed row", "at", at, "rows", e.grid.RowCount())
	return nil
}

// AddColumn inserts a column named header before or after column at, or
// appends one when at is End. It returns the index of the new column.
func (e *Editor) AddColumn(at int, p Placement, header string) (int, error) {
	target := at
	switch {
	case at == End:
		target = e.grid.ColumnCount()
	case p == After:
		if at < 0 || at >= e.grid.ColumnCount() {
			return -1, fmt.Errorf("add column after %d: %w", at, ErrIndexOutOfBounds)
		}
		target = at + 1
	}
	if err := e.grid.InsertColumn(target, header); err != nil {
		return -1, err
	}
	e.logger.Info("added column", "at", target, "header", header, "columns", e.grid.ColumnCount())
	return target, nil
}

// RemoveColumn deletes column at, or the final column when at is Last. On
// a grid without columns it returns ErrEmpty and changes nothing.
func (e *Editor) RemoveColumn(at int) error {
	if at == Last {
		at = e.grid.ColumnCount() - 1
	}
	if err := e.grid.RemoveColumn(at); err != nil {
		return err
	}
	e.logger.Info("removed column", "at", at, "columns", e.grid.ColumnCount())
	return nil
}

// SetCell writes a single cell.
func (e *Editor) SetCell(r, c int, v string) error {
	if err := e.grid.SetCell(r, c, v); err != nil {
		return err
	}
	e.logger.Debug("edited cell", "cell", Coord{Row: r, Col: c}.String())
	return nil
}

// RenameColumn changes the header of column c.
func (e *Editor) RenameColumn(c int, header string) error {
	if err := e.grid.SetHeader(c, header); err != nil {
		return err
	}
	e.logger.Info("renamed column", "col", ColToName(c), "header", header)
	return nil
}

// MoveRows drops the rows in sources onto row target. See MoveRows.
func (e *Editor) MoveRows(sources []int, target int) (int, error) {
	n, err := MoveRows(e.grid, sources, target)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		e.logger.Debug("no rows to move", "onto", target)
		return 0, nil
	}
	e.logger.Info("moved rows", "rows", n, "onto", target)
	return n, nil
}

// MoveRowsBefore moves the rows in sources in front of row gap. See
// MoveRowsBefore.
func (e *Editor) MoveRowsBefore(sources []int, gap int) (int, error) {
	n, err := MoveRowsBefore(e.grid, sources, gap)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		e.logger.Info("moved rows", "rows", n, "before", gap)
	}
	return n, nil
}
