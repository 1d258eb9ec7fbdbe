package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/javajack/xlgrid"
)

const (
	minColWidth = 3
	maxColWidth = 24
	gutterWidth = 6
	// title, header, status and help lines
	chromeLines = 4
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	gutter lipgloss.Style
	cell   lipgloss.Style
	cursor lipgloss.Style
	match  lipgloss.Style
	marked lipgloss.Style
	status lipgloss.Style
	prompt lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cell:   lipgloss.NewStyle(),
		cursor: lipgloss.NewStyle().Reverse(true),
		match:  lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#F25D94")),
		marked: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		prompt: lipgloss.NewStyle().Bold(true),
	}
}

func (m Model) View() string {
	var b strings.Builder

	title := m.res.LabelOr("main_window.title", "xlgrid")
	if m.doc.Path != "" {
		title += " - " + m.doc.Path
	}
	if m.doc.Dirty() {
		title += " *"
	}
	b.WriteString(m.styles.title.Render(title))
	b.WriteByte('\n')
	b.WriteString(m.renderTable())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTable() string {
	g := m.doc.Grid
	if g.ColumnCount() == 0 {
		return m.styles.status.Render("(no columns)") + "\n"
	}

	cols := m.visibleColumns()
	widths := m.columnWidths(cols)
	matches := map[xlgrid.Coord]bool{}
	for _, c := range m.doc.Finder().Matches() {
		matches[c] = true
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for i, c := range cols {
		h, _ := g.Header(c)
		if h == "" {
			h = xlgrid.ColToName(c)
		}
		b.WriteString(m.styles.header.Render(pad(h, widths[i])))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')

	end := min(m.top+m.visibleRows(), g.RowCount())
	for r := m.top; r < end; r++ {
		mark := " "
		if m.marked[r] {
			mark = "*"
		}
		gutter := fmt.Sprintf("%s%4d ", mark, r+1)
		if m.marked[r] {
			b.WriteString(m.styles.marked.Render(gutter))
		} else {
			b.WriteString(m.styles.gutter.Render(gutter))
		}
		for i, c := range cols {
			v, _ := g.Cell(r, c)
			style := m.styles.cell
			switch {
			case r == m.row && c == m.col:
				style = m.styles.cursor
			case matches[xlgrid.Coord{Row: r, Col: c}]:
				style = m.styles.match
			}
			b.WriteString(style.Render(pad(v, widths[i])))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) renderFooter() string {
	var b strings.Builder
	switch m.mode {
	case modeTable:
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteByte('\n')
		b.WriteString(m.help.ShortHelpView(m.keys.normalHelp()))
	case modeReplace:
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteByte('\n')
		b.WriteString(m.help.ShortHelpView([]key.Binding{
			m.keys.ReplaceOne, m.keys.ReplaceAll, m.keys.Next, m.keys.Previous, m.keys.Cancel,
		}))
	default:
		b.WriteString(m.styles.prompt.Render(m.promptTitle()))
		b.WriteByte('\n')
		b.WriteString(m.input.View())
	}
	return b.String()
}

func (m Model) promptTitle() string {
	switch m.mode {
	case modeEdit:
		return m.res.LabelOr("edit_dialog.title", "Edit cell") + " " + xlgrid.NewCoord(m.row, m.col).String()
	case modeRename:
		return m.res.LabelOr("edit_dialog.header", "Column name") + " " + xlgrid.ColToName(m.col)
	case modeFind:
		return m.res.LabelOr("finder_dialog.title", "Find") + ": " + m.res.LabelOr("finder_dialog.value", "Value")
	case modeReplaceOld:
		return m.res.LabelOr("replace_dialog.title", "Replace") + ": " + m.res.LabelOr("replace_dialog.old", "Find what")
	case modeReplaceNew:
		return m.res.LabelOr("replace_dialog.title", "Replace") + ": " + m.res.LabelOr("replace_dialog.new", "Replace with")
	}
	return ""
}

func (m Model) visibleRows() int {
	return max(1, m.height-chromeLines-1)
}

// visibleColumns returns the column indexes that fit the screen width,
// starting at m.left. At least one column is always shown.
func (m Model) visibleColumns() []int {
	g := m.doc.Grid
	var cols []int
	used := gutterWidth
	for c := m.left; c < g.ColumnCount(); c++ {
		w := m.columnWidth(c) + 1
		if len(cols) > 0 && used+w > m.width {
			break
		}
		cols = append(cols, c)
		used += w
	}
	return cols
}

func (m Model) columnWidths(cols []int) []int {
	out := make([]int, len(cols))
	for i, c := range cols {
		out[i] = m.columnWidth(c)
	}
	return out
}

// columnWidth sizes column c to its header and the rows on screen.
func (m Model) columnWidth(c int) int {
	g := m.doc.Grid
	h, _ := g.Header(c)
	w := max(lipgloss.Width(h), len(xlgrid.ColToName(c)))
	end := min(m.top+m.visibleRows(), g.RowCount())
	for r := m.top; r < end; r++ {
		v, _ := g.Cell(r, c)
		w = max(w, lipgloss.Width(flatten(v)))
	}
	return clamp(w, minColWidth, maxColWidth)
}

// scroll keeps the cursor cell on screen.
func (m *Model) scroll() {
	if m.row < m.top {
		m.top = m.row
	}
	if n := m.visibleRows(); m.row >= m.top+n {
		m.top = m.row - n + 1
	}
	m.top = max(m.top, 0)

	if m.col < m.left {
		m.left = m.col
	}
	for m.left < m.col {
		cols := m.visibleColumns()
		if len(cols) > 0 && cols[len(cols)-1] >= m.col {
			break
		}
		m.left++
	}
	m.left = max(m.left, 0)
}

// pad fits s into exactly w cells, truncating with an ellipsis.
func pad(s string, w int) string {
	s = flatten(s)
	if lipgloss.Width(s) > w {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r)) > w-1 {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
}

func flatten(s string) string {
	return strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\t", " ").Replace(s)
}
