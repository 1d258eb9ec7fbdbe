package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/javajack/xlgrid/config"
)

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Top, Bottom           key.Binding

	Edit         key.Binding
	RenameColumn key.Binding
	AddRowAbove  key.Binding
	AddRowBelow  key.Binding
	RemoveRow    key.Binding
	AddColumn    key.Binding
	RemoveColumn key.Binding
	Mark         key.Binding
	Move         key.Binding

	Find       key.Binding
	Replace    key.Binding
	Next       key.Binding
	Previous   key.Binding
	ReplaceOne key.Binding
	ReplaceAll key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	Save    key.Binding
	Quit    key.Binding
}

// newKeyMap builds the bindings from the shortcut config. Navigation keys
// are fixed.
func newKeyMap(res *config.Resources) keyMap {
	bind := func(name, help string, fallback ...string) key.Binding {
		keys := res.Keys(name, fallback...)
		h := ""
		if len(keys) > 0 {
			h = keys[0]
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(h, help))
	}
	label := func(name, fallback string) string { return res.LabelOr(name, fallback) }

	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),

		Edit:         bind("table.edit", label("edit_dialog.title", "edit"), "enter"),
		RenameColumn: bind("table.rename_column", label("edit_dialog.header", "rename column"), "ctrl+t"),
		AddRowAbove:  bind("table.add_row_above", label("table_context_menu.add_above", "add row above")),
		AddRowBelow:  bind("table.add_row_below", label("table_context_menu.add_below", "add row below")),
		RemoveRow:    bind("table.remove_row", label("table_context_menu.remove", "remove row")),
		AddColumn:    bind("table.add_column", label("table_context_menu.add_column_after", "add column"), "ctrl+l"),
		RemoveColumn: bind("table.remove_column", label("table_context_menu.remove_column", "remove column"), "ctrl+k"),
		Mark:         bind("table.mark_row", "mark row", " "),
		Move:         bind("table.move_rows", label("table_context_menu.move_rows", "move marked rows"), "ctrl+v"),

		Find:       bind("table.find", label("finder_dialog.title", "find")),
		Replace:    bind("table.replace", label("replace_dialog.title", "replace")),
		Next:       bind("table.next", label("finder_dialog.arrow_down", "next"), "ctrl+g"),
		Previous:   bind("table.previous", label("finder_dialog.arrow_up", "previous"), "ctrl+p"),
		ReplaceOne: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", label("replace_dialog.change", "replace"))),
		ReplaceAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", label("replace_dialog.change_all", "replace all"))),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Save:    bind("bar.file_menu.save", label("bar.file_menu.save", "save")),
		Quit:    bind("bar.file_menu.quit", "quit", "ctrl+q", "ctrl+c"),
	}
}

// normalHelp lists the bindings shown in the footer.
func (k keyMap) normalHelp() []key.Binding {
	return []key.Binding{
		k.Edit, k.AddRowAbove, k.AddRowBelow, k.RemoveRow,
		k.AddColumn, k.RemoveColumn, k.Mark, k.Move,
		k.Find, k.Replace, k.Save, k.Quit,
	}
}
