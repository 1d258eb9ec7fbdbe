package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRowsBefore_Examples(t *testing.T) {
	tests := []struct {
		name    string
		sources []int
		gap     int
		want    []string
	}{
		{"down before D", []int{0, 1}, 3, []string{"C", "A", "B", "D"}},
		{"up to top", []int{2, 3}, 0, []string{"C", "D", "A", "B"}},
		{"to end", []int{0}, -1, []string{"B", "C", "D", "A"}},
		{"to end explicit", []int{1}, 4, []string{"A", "C", "D", "B"}},
		{"scattered around gap", []int{0, 3}, 2, []string{"B", "A", "D", "C"}},
		{"gap inside selection", []int{1, 2}, 2, []string{"A", "B", "C", "D"}},
		{"unsorted duplicate sources", []int{3, 0, 3}, 2, []string{"B", "A", "D", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := letters("A", "B", "C", "D")
			n, err := MoveRowsBefore(g, tt.sources, tt.gap)
			require.NoError(t, err)
			assert.Positive(t, n)
			assert.Equal(t, tt.want, column(t, g, 0))
		})
	}
}

func TestMoveRows_DropOntoRow(t *testing.T) {
	tests := []struct {
		name    string
		sources []int
		target  int
		want    []string
	}{
		// Selection above the target lands after it.
		{"down onto D", []int{0, 1}, 3, []string{"C", "D", "A", "B"}},
		{"down onto C", []int{0, 1}, 2, []string{"C", "A", "B", "D"}},
		// Selection below the target lands before it.
		{"up onto B", []int{3}, 1, []string{"A", "D", "B", "C"}},
		{"past the end", []int{1}, -1, []string{"A", "C", "D", "B"}},
		{"target in selection is skipped", []int{0, 1, 2}, 2, []string{"C", "A", "B", "D"}},
		{"scattered", []int{0, 3}, 1, []string{"B", "A", "D", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := letters("A", "B", "C", "D")
			_, err := MoveRows(g, tt.sources, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, column(t, g, 0))
		})
	}
}

func TestMoveRows_NothingToMove(t *testing.T) {
	g := letters("A", "B", "C")
	rec := &recorder{}
	g.Subscribe(rec)

	n, err := MoveRows(g, []int{1}, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = MoveRows(g, nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"A", "B", "C"}, column(t, g, 0))
	assert.Empty(t, rec.changes)
}

func TestMoveRows_OutOfBounds(t *testing.T) {
	g := letters("A", "B", "C")

	_, err := MoveRows(g, []int{0, 3}, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = MoveRows(g, []int{0}, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = MoveRows(g, []int{-2}, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = MoveRowsBefore(g, []int{0}, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = MoveRowsBefore(g, []int{5}, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	assert.Equal(t, []string{"A", "B", "C"}, column(t, g, 0))
}

func TestMoveRows_PreservesOrdersAndCount(t *testing.T) {
	base := []string{"A", "B", "C", "D", "E", "F", "G"}
	selections := [][]int{{0}, {1, 4}, {0, 2, 6}, {5, 6}, {1, 2, 3}}

	for _, sel := range selections {
		for target := -1; target < len(base); target++ {
			g := letters(base...)
			_, err := MoveRows(g, sel, target)
			require.NoError(t, err)

			got := column(t, g, 0)
			require.Len(t, got, len(base), "sel %v target %d", sel, target)

			moved := map[string]bool{}
			for _, r := range sel {
				if r != target {
					moved[base[r]] = true
				}
			}
			var wantMoved, wantKept, gotMoved, gotKept []string
			for _, v := range base {
				if moved[v] {
					wantMoved = append(wantMoved, v)
				} else {
					wantKept = append(wantKept, v)
				}
			}
			for _, v := range got {
				if moved[v] {
					gotMoved = append(gotMoved, v)
				} else {
					gotKept = append(gotKept, v)
				}
			}
			assert.Equal(t, wantMoved, gotMoved, "sel %v target %d", sel, target)
			assert.Equal(t, wantKept, gotKept, "sel %v target %d", sel, target)

			// Moved rows are contiguous.
			if len(wantMoved) > 0 {
				first := -1
				for i, v := range got {
					if v == wantMoved[0] {
						first = i
						break
					}
				}
				require.GreaterOrEqual(t, first, 0)
				assert.Equal(t, wantMoved, got[first:first+len(wantMoved)], "sel %v target %d", sel, target)
			}
		}
	}
}

func TestMoveRows_MovesWholeRows(t *testing.T) {
	g := sampleGrid()
	_, err := MoveRowsBefore(g, []int{2}, 0)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Carol", "Engineering", "NYC"},
		{"Alice", "Engineering", "NYC"},
		{"Bob", "Marketing", "London"},
	}, g.Rows())
}

func TestMoveRows_SingleNotification(t *testing.T) {
	g := letters("A", "B", "C", "D")
	rec := &recorder{}
	g.Subscribe(rec)

	_, err := MoveRowsBefore(g, []int{0, 1}, 3)
	require.NoError(t, err)

	require.Len(t, rec.changes, 1)
	assert.Equal(t, Change{Kind: RowsMoved, Row: 1, Col: -1, Count: 2}, rec.changes[0])
}
