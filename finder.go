package xlgrid

// Finder locates cells whose value equals a search text and steps through
// the matches cyclically. A structural change to the grid (rows or columns
// inserted, removed or moved, or a reload) discards the current matches;
// plain cell edits do not.
type Finder struct {
	grid    *Grid
	text    string
	matches []Coord
	cursor  int // -1 = no current match

	unsubscribe func()
}

// NewFinder creates a Finder over g. Call Close when the Finder is no
// longer needed to stop listening for grid changes.
func NewFinder(g *Grid) *Finder {
	f := &Finder{grid: g, cursor: -1}
	f.unsubscribe = g.Subscribe(ListenerFunc(func(ch Change) {
		if ch.Kind.Structural() {
			f.Reset()
		}
	}))
	return f
}

// Close detaches the Finder from its grid.
func (f *Finder) Close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

// Find scans the grid in row-major order for cells exactly equal to text.
// On a non-empty result the cursor moves to the first match.
func (f *Finder) Find(text string) []Coord {
	return f.find(text, nil)
}

// FindWhere is like Find but only scans rows accepted by q. A query that
// fails to evaluate on a row skips that row.
func (f *Finder) FindWhere(q *Query, text string) []Coord {
	return f.find(text, q)
}

func (f *Finder) find(text string, q *Query) []Coord {
	f.text = text
	f.matches = nil
	f.cursor = -1

	for r, row := range f.grid.rows {
		if q != nil {
			if ok, err := q.Match(f.grid, r); err != nil || !ok {
				continue
			}
		}
		for c, v := range row {
			if v == text {
				f.matches = append(f.matches, Coord{Row: r, Col: c})
			}
		}
	}

	if len(f.matches) > 0 {
		f.Next()
	}
	return f.Matches()
}

// Next moves the cursor to the following match, wrapping to the first.
// It returns false when there are no matches.
func (f *Finder) Next() (Coord, bool) {
	n := len(f.matches)
	if n == 0 {
		return Coord{}, false
	}
	f.cursor = (f.cursor + 1) % n
	return f.matches[f.cursor], true
}

// Previous moves the cursor to the preceding match, wrapping to the last.
// It returns false when there are no matches.
func (f *Finder) Previous() (Coord, bool) {
	n := len(f.matches)
	if n == 0 {
		return Coord{}, false
	}
	f.cursor = ((f.cursor-1)%n + n) % n
	return f.matches[f.cursor], true
}

// Current returns the match under the cursor.
func (f *Finder) Current() (Coord, bool) {
	if f.cursor < 0 || f.cursor >= len(f.matches) {
		return Coord{}, false
	}
	return f.matches[f.cursor], true
}

// Cursor returns the cursor position within the matches, or -1.
func (f *Finder) Cursor() int { return f.cursor }

// HasMatches reports whether next/previous navigation is available.
func (f *Finder) HasMatches() bool { return len(f.matches) > 0 }

// Len returns the number of matches.
func (f *Finder) Len() int { return len(f.matches) }

// Text returns the text of the most recent search.
func (f *Finder) Text() string { return f.text }

// Matches returns a copy of the current match set.
func (f *Finder) Matches() []Coord {
	return append([]Coord(nil), f.matches...)
}

// Reset discards the matches and clears the cursor.
func (f *Finder) Reset() {
	f.matches = nil
	f.cursor = -1
}
