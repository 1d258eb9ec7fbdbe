package xlgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord addresses a single data cell in a Grid. Both fields are 0-based and
// the header row is not counted, so Coord{0, 0} is the first data cell.
type Coord struct {
	Row int
	Col int
}

// NewCoord creates a Coord.
func NewCoord(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String formats the Coord as a spreadsheet-style cell name like "B3".
func (c Coord) String() string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

// ParseCoord parses a cell name like "B3" or "$B$3" into a Coord.
func ParseCoord(s string) (Coord, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return Coord{}, fmt.Errorf("empty cell name")
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return Coord{}, fmt.Errorf("invalid cell name: %q", s)
	}

	col, err := NameToCol(s[:i])
	if err != nil {
		return Coord{}, err
	}

	rowNum := 0
	for _, ch := range s[i:] {
		if ch < '0' || ch > '9' {
			return Coord{}, fmt.Errorf("invalid row in cell name: %q", s)
		}
		rowNum = rowNum*10 + int(ch-'0')
	}
	if rowNum < 1 {
		return Coord{}, fmt.Errorf("invalid row number in cell name: %q", s)
	}
	return Coord{Row: rowNum - 1, Col: col}, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ColToName converts a 0-based column index to a column name.
// 0→"A", 25→"Z", 26→"AA", 702→"AAA"
func ColToName(col int) string {
	result := ""
	col++
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 0-based column index.
// "A"→0, "Z"→25, "AA"→26
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

// Size represents width (columns) and height (rows).
type Size struct {
	Width  int
	Height int
}

// String formats the Size as "(WxH)".
func (s Size) String() string {
	return fmt.Sprintf("(%dx%d)", s.Width, s.Height)
}
