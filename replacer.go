package xlgrid

// Replacer substitutes cell text, either one match at a time using the
// embedded Finder's cursor or across the whole grid.
type Replacer struct {
	*Finder
}

// NewReplacer creates a Replacer over g.
func NewReplacer(g *Grid) *Replacer {
	return &Replacer{Finder: NewFinder(g)}
}

// ReplaceCurrent overwrites the cell under the cursor with newText and
// advances to the next match. The cell is only changed if it still holds
// the text that was searched for; a match made stale by an edit is left
// alone. It reports whether a replacement happened.
func (r *Replacer) ReplaceCurrent(newText string) bool {
	at, ok := r.Current()
	if !ok {
		return false
	}
	v, err := r.grid.Cell(at.Row, at.Col)
	if err != nil || v != r.text {
		return false
	}
	if err := r.grid.SetCell(at.Row, at.Col, newText); err != nil {
		return false
	}
	r.Next()
	return true
}

// ReplaceAll overwrites every cell equal to oldText with newText and
// returns the number of cells changed. The match set and cursor are not
// touched; search again before navigating.
func (r *Replacer) ReplaceAll(oldText, newText string) int {
	return ReplaceAll(r.grid, oldText, newText)
}

// ReplaceAll overwrites every cell of g equal to oldText with newText and
// returns the number of cells changed.
func ReplaceAll(g *Grid, oldText, newText string) int {
	n := 0
	for r, row := range g.rows {
		for c, v := range row {
			if v == oldText {
				g.setCell(r, c, newText)
				n++
			}
		}
	}
	return n
}
