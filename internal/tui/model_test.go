package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/config"
)

func newTestModel(t *testing.T) (Model, *xlgrid.Document) {
	t.Helper()
	res, err := config.Default()
	require.NoError(t, err)

	doc := xlgrid.NewDocument(nil)
	doc.Reload([]string{"Name", "Dept", "City"}, [][]string{
		{"Alice", "Engineering", "NYC"},
		{"Bob", "Marketing", "London"},
		{"Carol", "Engineering", "NYC"},
		{"Dave", "Sales", "Paris"},
	})
	require.NoError(t, doc.SaveAs(filepath.Join(t.TempDir(), "people.xlsx")))

	m := New(doc, res)
	t.Cleanup(func() {
		m.Close()
		doc.Close()
	})
	return m, doc
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msgs through Update and returns the resulting model and the
// last command.
func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func names(t *testing.T, doc *xlgrid.Document) []string {
	t.Helper()
	out := make([]string, doc.Grid.RowCount())
	for r := range out {
		v, err := doc.Grid.Cell(r, 0)
		require.NoError(t, err)
		out[r] = v
	}
	return out
}

func TestModel_CursorStaysInsideGrid(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyUp), keyMsg(tea.KeyLeft))
	assert.Equal(t, 0, m.row)
	assert.Equal(t, 0, m.col)

	m, _ = press(t, m, runes("G"), keyMsg(tea.KeyRight), keyMsg(tea.KeyRight), keyMsg(tea.KeyRight))
	assert.Equal(t, 3, m.row)
	assert.Equal(t, 2, m.col)

	m, _ = press(t, m, keyMsg(tea.KeyDown), runes("g"))
	assert.Equal(t, 0, m.row)
}

func TestModel_EditCell(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyEnter))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Alice", m.input.Value())

	m, _ = press(t, m, runes("!"), keyMsg(tea.KeyEnter))
	assert.Equal(t, modeTable, m.mode)
	v, _ := doc.Grid.Cell(0, 0)
	assert.Equal(t, "Alice!", v)
	assert.True(t, doc.Dirty())
}

func TestModel_EscCancelsPrompt(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyEnter), runes("zzz"), keyMsg(tea.KeyEsc))
	assert.Equal(t, modeTable, m.mode)
	v, _ := doc.Grid.Cell(0, 0)
	assert.Equal(t, "Alice", v)
	assert.False(t, doc.Dirty())
}

func TestModel_AddAndRemoveRows(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyDown), keyMsg(tea.KeyCtrlN))
	assert.Equal(t, 2, m.row)
	assert.Equal(t, []string{"Alice", "Bob", "", "Carol", "Dave"}, names(t, doc))

	m, _ = press(t, m, keyMsg(tea.KeyCtrlB))
	assert.Equal(t, 2, m.row)
	assert.Equal(t, []string{"Alice", "Bob", "", "", "Carol", "Dave"}, names(t, doc))

	m, _ = press(t, m, keyMsg(tea.KeyCtrlD), keyMsg(tea.KeyCtrlD))
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave"}, names(t, doc))
	assert.Equal(t, 2, m.row)
}

func TestModel_RemoveLastRowOfEmptyGridReportsError(t *testing.T) {
	res, err := config.Default()
	require.NoError(t, err)
	doc := xlgrid.NewDocument([]string{"A"})
	m := New(doc, res)
	defer m.Close()

	m, _ = press(t, m, keyMsg(tea.KeyCtrlD))
	assert.Contains(t, m.status, xlgrid.ErrEmpty.Error())

	m, _ = press(t, m, keyMsg(tea.KeyCtrlN))
	assert.Equal(t, 1, doc.Grid.RowCount())
	assert.Equal(t, 0, m.row)
}

func TestModel_AddColumnPromptsForName(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlL))
	require.Equal(t, modeRename, m.mode)
	assert.Equal(t, 1, m.col)

	m, _ = press(t, m, runes("Age"), keyMsg(tea.KeyEnter))
	assert.Equal(t, []string{"Name", "Age", "Dept", "City"}, doc.Grid.Headers())

	m, _ = press(t, m, keyMsg(tea.KeyCtrlK))
	assert.Equal(t, []string{"Name", "Dept", "City"}, doc.Grid.Headers())
}

func TestModel_MoveMarkedRowsAboveCursor(t *testing.T) {
	m, doc := newTestModel(t)

	// Mark Alice and Bob; marking steps down a row each time.
	m, _ = press(t, m, keyMsg(tea.KeySpace), keyMsg(tea.KeySpace))
	assert.Equal(t, 2, m.row)
	assert.Len(t, m.marked, 2)

	m, _ = press(t, m, keyMsg(tea.KeyDown), keyMsg(tea.KeyCtrlV))
	assert.Equal(t, []string{"Carol", "Alice", "Bob", "Dave"}, names(t, doc))
	assert.Equal(t, 1, m.row)
	assert.Empty(t, m.marked)
	assert.Contains(t, m.status, "moved 2 rows")
}

func TestModel_MoveWithoutMarks(t *testing.T) {
	m, doc := newTestModel(t)
	m, _ = press(t, m, keyMsg(tea.KeyCtrlV))
	assert.Equal(t, "no marked rows", m.status)
	assert.False(t, doc.Dirty())
}

func TestModel_FindCyclesThroughMatches(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlF))
	require.Equal(t, modeFind, m.mode)

	m, _ = press(t, m, runes("NYC"), keyMsg(tea.KeyEnter))
	assert.Equal(t, modeTable, m.mode)
	assert.Equal(t, [2]int{0, 2}, [2]int{m.row, m.col})
	assert.Equal(t, "C1 1/2", m.status)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlG))
	assert.Equal(t, [2]int{2, 2}, [2]int{m.row, m.col})

	m, _ = press(t, m, keyMsg(tea.KeyCtrlG))
	assert.Equal(t, [2]int{0, 2}, [2]int{m.row, m.col})

	m, _ = press(t, m, keyMsg(tea.KeyCtrlP))
	assert.Equal(t, [2]int{2, 2}, [2]int{m.row, m.col})
}

func TestModel_FindWithoutMatches(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlF), runes("Berlin"), keyMsg(tea.KeyEnter))
	assert.Equal(t, "No matches", m.status)
	assert.Equal(t, 0, m.row)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlG))
	assert.Equal(t, "No matches", m.status)
}

func TestModel_ReplaceOneThenAll(t *testing.T) {
	m, doc := newTestModel(t)
	require.NoError(t, doc.Grid.SetCell(3, 2, "NYC"))

	m, _ = press(t, m,
		keyMsg(tea.KeyCtrlR), runes("NYC"), keyMsg(tea.KeyEnter),
		runes("Boston"), keyMsg(tea.KeyEnter),
	)
	require.Equal(t, modeReplace, m.mode)
	assert.Equal(t, [2]int{0, 2}, [2]int{m.row, m.col})

	// Replace the first match; the cursor moves on to the second.
	m, _ = press(t, m, keyMsg(tea.KeyEnter))
	v, _ := doc.Grid.Cell(0, 2)
	assert.Equal(t, "Boston", v)
	assert.Equal(t, [2]int{2, 2}, [2]int{m.row, m.col})

	m, _ = press(t, m, keyMsg(tea.KeyCtrlA))
	assert.Equal(t, modeTable, m.mode)
	assert.Equal(t, "Replace all: 2", m.status)
	for _, r := range []int{0, 2, 3} {
		v, _ := doc.Grid.Cell(r, 2)
		assert.Equal(t, "Boston", v)
	}
	v, _ = doc.Grid.Cell(1, 2)
	assert.Equal(t, "London", v)
}

func TestModel_StructuralEditClearsMatches(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlF), runes("NYC"), keyMsg(tea.KeyEnter))
	require.True(t, doc.Finder().HasMatches())

	m, _ = press(t, m, keyMsg(tea.KeyCtrlN))
	assert.False(t, doc.Finder().HasMatches())

	m, _ = press(t, m, keyMsg(tea.KeyCtrlG))
	assert.Equal(t, "No matches", m.status)
}

func TestModel_Save(t *testing.T) {
	m, doc := newTestModel(t)

	m, _ = press(t, m, keyMsg(tea.KeyEnter), runes("x"), keyMsg(tea.KeyEnter))
	require.True(t, doc.Dirty())

	m, _ = press(t, m, keyMsg(tea.KeyCtrlS))
	assert.False(t, doc.Dirty())
	assert.Contains(t, m.status, doc.Path)

	_, err := os.Stat(doc.Path)
	require.NoError(t, err)
	back, err := xlgrid.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.Grid.Rows(), back.Rows())
}

func TestModel_ImportFailureIsShownAndSaveConfirms(t *testing.T) {
	res, err := config.Default()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.xlsx")
	junk := []byte("these bytes are not a workbook")
	require.NoError(t, os.WriteFile(path, junk, 0o644))

	doc := xlgrid.Open(path)
	m := New(doc, res)
	t.Cleanup(func() {
		m.Close()
		doc.Close()
	})
	assert.Contains(t, m.status, "Could not import file")
	assert.Contains(t, m.View(), "Could not import file")

	// The first save is refused and leaves the file alone.
	m, _ = press(t, m, keyMsg(tea.KeyCtrlS))
	assert.True(t, m.confirmOverwrite)
	assert.Contains(t, m.status, "press save again")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, junk, data)

	// Any other key cancels the pending overwrite.
	m, _ = press(t, m, keyMsg(tea.KeyDown), keyMsg(tea.KeyCtrlS))
	assert.True(t, m.confirmOverwrite)
	m, _ = press(t, m, keyMsg(tea.KeyDown))
	assert.False(t, m.confirmOverwrite)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, junk, data)

	// Pressing save twice in a row overwrites.
	m, _ = press(t, m, keyMsg(tea.KeyCtrlS), keyMsg(tea.KeyCtrlS))
	assert.False(t, m.confirmOverwrite)
	assert.NoError(t, doc.ImportErr)
	assert.Contains(t, m.status, "Save "+path)
	_, err = xlgrid.ReadFile(path)
	assert.NoError(t, err)
}

func TestModel_QuitAsksOnceWhenDirty(t *testing.T) {
	m, doc := newTestModel(t)

	_, cmd := press(t, m, keyMsg(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	require.NoError(t, doc.Editor.SetCell(0, 0, "changed"))
	m, cmd = press(t, m, keyMsg(tea.KeyCtrlQ))
	assert.Nil(t, cmd)
	assert.True(t, m.confirmQuit)

	_, cmd = press(t, m, keyMsg(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CustomShortcuts(t *testing.T) {
	res, err := config.Parse(nil, []byte("table:\n  find: f3\n"))
	require.NoError(t, err)

	doc := xlgrid.NewDocument([]string{"A"})
	doc.Reload([]string{"A"}, [][]string{{"x"}, {"y"}})
	m := New(doc, res)
	defer m.Close()

	m, _ = press(t, m, keyMsg(tea.KeyCtrlF))
	assert.Equal(t, modeTable, m.mode)

	m, _ = press(t, m, keyMsg(tea.KeyF3))
	assert.Equal(t, modeFind, m.mode)
	assert.Equal(t, "Find: Value", m.promptTitle())
}

func TestModel_View(t *testing.T) {
	m, doc := newTestModel(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 10}, keyMsg(tea.KeySpace))

	out := m.View()
	assert.Contains(t, out, "xlgrid - "+doc.Path)
	for _, s := range []string{"Name", "Dept", "City", "Alice", "Marketing"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "*   1")

	// Only the rows that fit are drawn.
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 6}, runes("G"))
	out = m.View()
	assert.Contains(t, out, "Dave")
	assert.NotContains(t, out, "Alice")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "abc…", pad("abcdef", 4))
	assert.Equal(t, "a⏎b ", pad("a\nb", 4))
}
