// Package tui is the terminal front-end of xlgrid: a table view over a
// Document with prompts for editing, find and replace.
package tui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/config"
)

type mode int

const (
	modeTable mode = iota
	modeEdit
	modeRename
	modeFind
	modeReplaceOld
	modeReplaceNew
	modeReplace // stepping through replace candidates
)

func (m mode) prompting() bool {
	return m != modeTable && m != modeReplace
}

// Model is the bubbletea model for one open document.
type Model struct {
	doc    *xlgrid.Document
	res    *config.Resources
	keys   keyMap
	styles styles
	help   help.Model
	input  textinput.Model

	mode     mode
	row, col int
	top      int
	left     int
	width    int
	height   int

	// marked is shared by every copy of the model; the grid listener
	// clears it when rows shift.
	marked      map[int]bool
	unsubscribe func()

	replaceOld       string
	replaceNew       string
	status           string
	confirmQuit      bool
	confirmOverwrite bool
}

// New creates a model over doc. Labels and key bindings come from res.
func New(doc *xlgrid.Document, res *config.Resources) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	m := Model{
		doc:    doc,
		res:    res,
		keys:   newKeyMap(res),
		styles: defaultStyles(),
		help:   help.New(),
		input:  ti,
		width:  80,
		height: 24,
		marked: map[int]bool{},
	}
	if doc.ImportErr != nil {
		m.status = fmt.Sprintf("%s: %v", res.LabelOr("table_loader.import_failed", "could not import file"), doc.ImportErr)
	}
	marked := m.marked
	m.unsubscribe = doc.Grid.Subscribe(xlgrid.ListenerFunc(func(ch xlgrid.Change) {
		if ch.Kind.Structural() {
			clear(marked)
		}
	}))
	return m
}

// Run opens a full-screen program over doc and blocks until it quits.
func Run(doc *xlgrid.Document, res *config.Resources) error {
	m := New(doc, res)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Close detaches the model from the document's grid.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case m.mode.prompting():
			m, cmd = m.updatePrompt(msg)
		case m.mode == modeReplace:
			m, cmd = m.updateReplace(msg)
		default:
			m, cmd = m.updateTable(msg)
		}
	}
	m.clampCursor()
	m.scroll()
	return m, cmd
}

func (m Model) updateTable(msg tea.KeyMsg) (Model, tea.Cmd) {
	g := m.doc.Grid
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}
	if !key.Matches(msg, m.keys.Save) {
		m.confirmOverwrite = false
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.doc.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.status = "unsaved changes; press again to quit"
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.col--
	case key.Matches(msg, m.keys.Right):
		m.col++
	case key.Matches(msg, m.keys.Top):
		m.row = 0
	case key.Matches(msg, m.keys.Bottom):
		m.row = g.RowCount() - 1

	case key.Matches(msg, m.keys.Edit):
		v, err := g.Cell(m.row, m.col)
		if err != nil {
			return m, nil
		}
		return m.prompt(modeEdit, v)

	case key.Matches(msg, m.keys.RenameColumn):
		h, err := g.Header(m.col)
		if err != nil {
			return m, nil
		}
		return m.prompt(modeRename, h)

	case key.Matches(msg, m.keys.AddRowAbove):
		at, err := m.doc.Editor.AddRow(m.row, xlgrid.Above)
		m.report(err)
		if err == nil {
			m.row = at
		}

	case key.Matches(msg, m.keys.AddRowBelow):
		var at int
		var err error
		if g.RowCount() == 0 {
			at, err = m.doc.Editor.AddRow(xlgrid.End, xlgrid.Below)
		} else {
			at, err = m.doc.Editor.AddRow(m.row, xlgrid.Below)
		}
		m.report(err)
		if err == nil {
			m.row = at
		}

	case key.Matches(msg, m.keys.RemoveRow):
		m.report(m.doc.Editor.RemoveRow(m.row))

	case key.Matches(msg, m.keys.AddColumn):
		at := m.col
		if g.ColumnCount() == 0 {
			at = xlgrid.End
		}
		c, err := m.doc.Editor.AddColumn(at, xlgrid.After, "")
		m.report(err)
		if err != nil {
			return m, nil
		}
		m.col = c
		return m.prompt(modeRename, "")

	case key.Matches(msg, m.keys.RemoveColumn):
		m.report(m.doc.Editor.RemoveColumn(m.col))

	case key.Matches(msg, m.keys.Mark):
		if g.RowCount() == 0 {
			return m, nil
		}
		if m.marked[m.row] {
			delete(m.marked, m.row)
		} else {
			m.marked[m.row] = true
		}
		m.row++

	case key.Matches(msg, m.keys.Move):
		m.moveMarked()

	case key.Matches(msg, m.keys.Find):
		return m.prompt(modeFind, m.doc.Finder().Text())

	case key.Matches(msg, m.keys.Replace):
		return m.prompt(modeReplaceOld, m.replaceOld)

	case key.Matches(msg, m.keys.Next):
		m.step(m.doc.Finder().Next)
	case key.Matches(msg, m.keys.Previous):
		m.step(m.doc.Finder().Previous)

	case key.Matches(msg, m.keys.Save):
		m.save()
	}
	return m, nil
}

// save writes the document. A file that failed to import is only
// overwritten on the second press.
func (m *Model) save() {
	var err error
	if m.confirmOverwrite {
		err = m.doc.SaveAs(m.doc.Path)
	} else {
		err = m.doc.Save()
	}
	m.confirmOverwrite = false
	switch {
	case errors.Is(err, xlgrid.ErrImportFailed):
		m.confirmOverwrite = true
		m.status = fmt.Sprintf("%s was not imported; press save again to overwrite it", m.doc.Path)
	case err != nil:
		m.status = err.Error()
	default:
		m.status = fmt.Sprintf("%s %s", m.res.LabelOr("bar.file_menu.save", "saved"), m.doc.Path)
	}
}

// moveMarked moves the marked rows so they sit directly above the cursor
// row, keeping their order, and puts the cursor on the first of them.
func (m *Model) moveMarked() {
	if len(m.marked) == 0 {
		m.status = "no marked rows"
		return
	}
	sources := make([]int, 0, len(m.marked))
	above := 0
	for r := range m.marked {
		sources = append(sources, r)
		if r < m.row {
			above++
		}
	}
	sort.Ints(sources)

	n, err := m.doc.Editor.MoveRowsBefore(sources, m.row)
	if err != nil {
		m.report(err)
		return
	}
	m.row -= above
	m.status = fmt.Sprintf("moved %d rows", n)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeTable
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		m.input.Blur()
		return m.commit(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commit(value string) (Model, tea.Cmd) {
	current := m.mode
	m.mode = modeTable

	switch current {
	case modeEdit:
		m.report(m.doc.Editor.SetCell(m.row, m.col, value))
	case modeRename:
		m.report(m.doc.Editor.RenameColumn(m.col, value))
	case modeFind:
		f := m.doc.Finder()
		f.Find(value)
		m.step(f.Current)
	case modeReplaceOld:
		m.replaceOld = value
		return m.prompt(modeReplaceNew, m.replaceNew)
	case modeReplaceNew:
		m.replaceNew = value
		m.doc.Replacer.Find(m.replaceOld)
		if m.step(m.doc.Replacer.Current) {
			m.mode = modeReplace
		}
	}
	return m, nil
}

func (m Model) updateReplace(msg tea.KeyMsg) (Model, tea.Cmd) {
	r := m.doc.Replacer
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeTable
		m.status = ""
	case key.Matches(msg, m.keys.ReplaceOne):
		if r.ReplaceCurrent(m.replaceNew) {
			m.step(r.Current)
		} else {
			m.step(r.Next)
		}
	case key.Matches(msg, m.keys.ReplaceAll):
		n := r.ReplaceAll(m.replaceOld, m.replaceNew)
		r.Reset()
		m.mode = modeTable
		m.status = fmt.Sprintf("%s: %d", m.res.LabelOr("replace_dialog.change_all", "replaced"), n)
	case key.Matches(msg, m.keys.Next):
		m.step(r.Next)
	case key.Matches(msg, m.keys.Previous):
		m.step(r.Previous)
	}
	return m, nil
}

// prompt opens the text input for mode, pre-filled with value.
func (m Model) prompt(md mode, value string) (Model, tea.Cmd) {
	m.mode = md
	m.status = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// step moves the cursor to the match returned by move and reports the
// position among all matches.
func (m *Model) step(move func() (xlgrid.Coord, bool)) bool {
	at, ok := move()
	if !ok {
		m.status = m.res.LabelOr("finder_dialog.no_matches", "no matches")
		return false
	}
	m.row, m.col = at.Row, at.Col
	f := m.doc.Finder()
	m.status = fmt.Sprintf("%s %d/%d", at, f.Cursor()+1, f.Len())
	return true
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) clampCursor() {
	g := m.doc.Grid
	m.row = clamp(m.row, 0, g.RowCount()-1)
	m.col = clamp(m.col, 0, g.ColumnCount()-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
