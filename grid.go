package xlgrid

import "fmt"

// Grid is an in-memory table of string cells with one header per column.
// Every row has exactly len(headers) cells. A Grid is not safe for
// concurrent use; callers serialise access.
type Grid struct {
	headers []string
	rows    [][]string

	listeners []listenerEntry
	nextID    int
}

type listenerEntry struct {
	id int
	l  Listener
}

// NewGrid creates a Grid with the given headers and no rows.
func NewGrid(headers ...string) *Grid {
	g := &Grid{}
	g.headers = append([]string(nil), headers...)
	return g
}

// NewGridFromRows creates a Grid from headers and rows. Ragged input is
// normalised the same way as Load.
func NewGridFromRows(headers []string, rows [][]string) *Grid {
	g := &Grid{}
	g.headers, g.rows = normalize(headers, rows)
	return g
}

// RowCount returns the number of data rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int { return len(g.headers) }

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return Size{Width: len(g.headers), Height: len(g.rows)}
}

// Headers returns a copy of the column headers.
func (g *Grid) Headers() []string {
	return append([]string(nil), g.headers...)
}

// Header returns the header of column c.
func (g *Grid) Header(c int) (string, error) {
	if err := g.checkCol(c); err != nil {
		return "", err
	}
	return g.headers[c], nil
}

// SetHeader renames column c.
func (g *Grid) SetHeader(c int, v string) error {
	if err := g.checkCol(c); err != nil {
		return err
	}
	old := g.headers[c]
	g.headers[c] = v
	g.notify(Change{Kind: HeaderEdited, Row: -1, Col: c, Old: old, New: v})
	return nil
}

// Cell returns the value at row r, column c.
func (g *Grid) Cell(r, c int) (string, error) {
	if err := g.checkCell(r, c); err != nil {
		return "", err
	}
	return g.rows[r][c], nil
}

// SetCell overwrites the value at row r, column c.
func (g *Grid) SetCell(r, c int, v string) error {
	if err := g.checkCell(r, c); err != nil {
		return err
	}
	g.setCell(r, c, v)
	return nil
}

// setCell is SetCell for a cell the caller knows is in range.
func (g *Grid) setCell(r, c int, v string) {
	old := g.rows[r][c]
	g.rows[r][c] = v
	g.notify(Change{Kind: CellEdited, Row: r, Col: c, Old: old, New: v})
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) ([]string, error) {
	if err := g.checkRow(r); err != nil {
		return nil, err
	}
	return append([]string(nil), g.rows[r]...), nil
}

// Rows returns a deep copy of all data rows.
func (g *Grid) Rows() [][]string {
	out := make([][]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// InsertRow inserts an empty row before row at. at == RowCount() appends.
func (g *Grid) InsertRow(at int) error {
	if at < 0 || at > len(g.rows) {
		return fmt.Errorf("insert row %d of %d: %w", at, len(g.rows), ErrIndexOutOfBounds)
	}
	g.insertBlankRows(at, 1)
	g.notify(Change{Kind: RowInserted, Row: at, Col: -1, Count: 1})
	return nil
}

// RemoveRow deletes row at. It returns ErrEmpty when there are no rows.
func (g *Grid) RemoveRow(at int) error {
	if len(g.rows) == 0 {
		return fmt.Errorf("remove row %d: %w", at, ErrEmpty)
	}
	if err := g.checkRow(at); err != nil {
		return err
	}
	g.rows = append(g.rows[:at], g.rows[at+1:]...)
	g.notify(Change{Kind: RowRemoved, Row: at, Col: -1, Count: 1})
	return nil
}

// InsertColumn inserts an empty column named header before column at.
// at == ColumnCount() appends.
func (g *Grid) InsertColumn(at int, header string) error {
	if at < 0 || at > len(g.headers) {
		return fmt.Errorf("insert column %d of %d: %w", at, len(g.headers), ErrIndexOutOfBounds)
	}
	g.headers = insertString(g.headers, at, header)
	for i, row := range g.rows {
		g.rows[i] = insertString(row, at, "")
	}
	g.notify(Change{Kind: ColumnInserted, Row: -1, Col: at, Count: 1})
	return nil
}

// RemoveColumn deletes column at. It returns ErrEmpty when there are no
// columns.
func (g *Grid) RemoveColumn(at int) error {
	if len(g.headers) == 0 {
		return fmt.Errorf("remove column %d: %w", at, ErrEmpty)
	}
	if err := g.checkCol(at); err != nil {
		return err
	}
	g.headers = append(g.headers[:at], g.headers[at+1:]...)
	for i, row := range g.rows {
		g.rows[i] = append(row[:at], row[at+1:]...)
	}
	g.notify(Change{Kind: ColumnRemoved, Row: -1, Col: at, Count: 1})
	return nil
}

// Load replaces the whole grid. The column count becomes the larger of
// len(headers) and the longest row; missing headers and short rows are
// padded with empty strings. The inputs are copied.
func (g *Grid) Load(rows [][]string, headers []string) {
	g.headers, g.rows = normalize(headers, rows)
	g.notify(Change{Kind: Reloaded, Row: -1, Col: -1, Count: len(g.rows)})
}

// Subscribe registers l for change notifications and returns a function
// that removes it again.
func (g *Grid) Subscribe(l Listener) (unsubscribe func()) {
	g.nextID++
	id := g.nextID
	g.listeners = append(g.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range g.listeners {
			if e.id == id {
				g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

func (g *Grid) notify(ch Change) {
	if len(g.listeners) == 0 {
		return
	}
	// Listeners may unsubscribe while being notified.
	snapshot := append([]listenerEntry(nil), g.listeners...)
	for _, e := range snapshot {
		e.l.GridChanged(ch)
	}
}

// insertBlankRows inserts n empty rows before row at without notifying.
func (g *Grid) insertBlankRows(at, n int) {
	blank := make([][]string, n)
	for i := range blank {
		blank[i] = make([]string, len(g.headers))
	}
	g.rows = append(g.rows[:at], append(blank, g.rows[at:]...)...)
}

func (g *Grid) checkRow(r int) error {
	if r < 0 || r >= len(g.rows) {
		return fmt.Errorf("row %d of %d: %w", r, len(g.rows), ErrIndexOutOfBounds)
	}
	return nil
}

func (g *Grid) checkCol(c int) error {
	if c < 0 || c >= len(g.headers) {
		return fmt.Errorf("column %d of %d: %w", c, len(g.headers), ErrIndexOutOfBounds)
	}
	return nil
}

func (g *Grid) checkCell(r, c int) error {
	if err := g.checkRow(r); err != nil {
		return err
	}
	return g.checkCol(c)
}

func insertString(s []string, at int, v string) []string {
	s = append(s, "")
	copy(s[at+1:], s[at:])
	s[at] = v
	return s
}

func normalize(headers []string, rows [][]string) ([]string, [][]string) {
	width := len(headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	h := make([]string, width)
	copy(h, headers)
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, width)
		copy(out[i], row)
	}
	return h, out
}
