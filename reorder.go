package xlgrid

import (
	"fmt"
	"sort"
)

// MoveRows drops the rows in sources onto row target, the way a row
// selection is dragged onto another row. target == -1 means "past the last
// row". It returns how many rows moved; 0 means nothing to do.
//
// The target row itself is never moved. When the selection starts above
// the target, the rows land after the target row; otherwise they land
// before it. The moved rows keep their relative order, as do the rows
// that stay put.
func MoveRows(g *Grid, sources []int, target int) (int, error) {
	if err := checkMove(g, sources, target); err != nil {
		return 0, err
	}

	rows := make([]int, 0, len(sources))
	for _, r := range sources {
		if r != target {
			rows = append(rows, r)
		}
	}
	rows = uniqueSorted(rows)
	if len(rows) == 0 {
		return 0, nil
	}

	if target == -1 {
		target = g.RowCount()
	}
	if rows[0] < target {
		target++
	}
	// Dropping onto the last row from above means appending.
	if target > g.RowCount() {
		target = g.RowCount()
	}

	g.relocate(rows, target)
	return len(rows), nil
}

// MoveRowsBefore moves the rows in sources so that they sit immediately in
// front of the row that is currently at index gap. gap == RowCount() or
// gap == -1 moves them to the end. It returns how many rows moved.
func MoveRowsBefore(g *Grid, sources []int, gap int) (int, error) {
	if gap != -1 && (gap < 0 || gap > g.RowCount()) {
		return 0, fmt.Errorf("move before row %d of %d: %w", gap, g.RowCount(), ErrIndexOutOfBounds)
	}
	if err := checkMove(g, sources, -1); err != nil {
		return 0, err
	}
	rows := uniqueSorted(sources)
	if len(rows) == 0 {
		return 0, nil
	}
	if gap == -1 {
		gap = g.RowCount()
	}
	g.relocate(rows, gap)
	return len(rows), nil
}

func checkMove(g *Grid, sources []int, target int) error {
	n := g.RowCount()
	if target != -1 && (target < 0 || target >= n) {
		return fmt.Errorf("move onto row %d of %d: %w", target, n, ErrIndexOutOfBounds)
	}
	for _, r := range sources {
		if r < 0 || r >= n {
			return fmt.Errorf("move row %d of %d: %w", r, n, ErrIndexOutOfBounds)
		}
	}
	return nil
}

// relocate moves the ascending, distinct rows to start at insertion point
// at (0..RowCount()). Placeholder rows are inserted at the destination,
// filled from the sources, and the vacated source rows are deleted from
// the bottom up so earlier indices stay valid.
func (g *Grid) relocate(rows []int, at int) {
	n := len(rows)
	g.insertBlankRows(at, n)

	type move struct{ src, dst int }
	moves := make([]move, 0, n)
	for i, r := range rows {
		src := r
		if r >= at {
			src = r + n
		}
		moves = append(moves, move{src: src, dst: at + i})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].src < moves[j].src })

	for _, m := range moves {
		g.rows[m.dst], g.rows[m.src] = g.rows[m.src], g.rows[m.dst]
	}
	for i := len(moves) - 1; i >= 0; i-- {
		src := moves[i].src
		g.rows = append(g.rows[:src], g.rows[src+1:]...)
	}

	first := at
	for _, r := range rows {
		if r < at {
			first--
		}
	}
	g.notify(Change{Kind: RowsMoved, Row: first, Col: -1, Count: n})
}

func uniqueSorted(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	j := 0
	for i, v := range out {
		if i == 0 || v != out[j-1] {
			out[j] = v
			j++
		}
	}
	return out[:j]
}
