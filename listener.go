package xlgrid

// ChangeKind identifies what a Grid mutation did.
type ChangeKind int

const (
	CellEdited ChangeKind = iota
	HeaderEdited
	RowInserted
	RowRemoved
	ColumnInserted
	ColumnRemoved
	RowsMoved
	Reloaded
)

var changeKindNames = [...]string{
	CellEdited:     "cell-edited",
	HeaderEdited:   "header-edited",
	RowInserted:    "row-inserted",
	RowRemoved:     "row-removed",
	ColumnInserted: "column-inserted",
	ColumnRemoved:  "column-removed",
	RowsMoved:      "rows-moved",
	Reloaded:       "reloaded",
}

func (k ChangeKind) String() string {
	if k < 0 || int(k) >= len(changeKindNames) {
		return "unknown"
	}
	return changeKindNames[k]
}

// Structural reports whether the change shifts or replaces cells. Any match
// set computed before a structural change no longer points at the same data.
func (k ChangeKind) Structural() bool {
	return k != CellEdited && k != HeaderEdited
}

// Change describes a single mutation of a Grid.
//
// Row and Col are -1 when not applicable. For RowsMoved, Row is the first
// row of the moved block and Count its length. Old and New are only set
// for CellEdited and HeaderEdited.
type Change struct {
	Kind  ChangeKind
	Row   int
	Col   int
	Count int
	Old   string
	New   string
}

// Listener is notified after every successful Grid mutation.
// Implement this interface to keep a view, a dirty flag or a search session
// in step with the data.
type Listener interface {
	GridChanged(ch Change)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ch Change)

// GridChanged calls f(ch).
func (f ListenerFunc) GridChanged(ch Change) { f(ch) }
