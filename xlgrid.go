package xlgrid

import "fmt"

// Document bundles a Grid with the file it came from and the helpers a
// front-end drives: an Editor for structural edits and a Replacer (which
// embeds a Finder) for find and replace.
type Document struct {
	Path     string
	Grid     *Grid
	Editor   *Editor
	Replacer *Replacer

	// ImportErr is the reason Open could not read Path, or nil. While it
	// is set Save refuses to write and the grid is an empty stand-in.
	ImportErr error

	opts        []Option
	dirty       bool
	unsubscribe func()
}

// NewDocument creates an unsaved document holding an empty grid with the
// given headers.
func NewDocument(headers []string, opts ...Option) *Document {
	return newDocument("", NewGrid(headers...), opts)
}

// Open loads path into a new document. A missing file yields an empty
// document that Save creates. A file that exists but cannot be read also
// yields an empty document, with the failure kept in ImportErr.
func Open(path string, opts ...Option) *Document {
	g, err := importFile(path, opts)
	d := newDocument(path, g, opts)
	d.ImportErr = err
	return d
}

func newDocument(path string, g *Grid, opts []Option) *Document {
	d := &Document{
		Path:     path,
		Grid:     g,
		Editor:   NewEditor(g, opts...),
		Replacer: NewReplacer(g),
		opts:     opts,
	}
	d.unsubscribe = g.Subscribe(ListenerFunc(func(Change) { d.dirty = true }))
	return d
}

// Finder returns the document's search session.
func (d *Document) Finder() *Finder { return d.Replacer.Finder }

// Dirty reports whether the grid changed since it was opened or saved.
func (d *Document) Dirty() bool { return d.dirty }

// Reload replaces the grid contents with the given headers and rows.
func (d *Document) Reload(headers []string, rows [][]string) {
	d.Grid.Load(rows, headers)
}

// Save writes the grid back to Path. It returns ErrImportFailed without
// touching the file when Path could not be read on Open.
func (d *Document) Save() error {
	if d.Path == "" {
		return fmt.Errorf("save: document has no path")
	}
	if d.ImportErr != nil {
		return fmt.Errorf("save %q: %w: %v", d.Path, ErrImportFailed, d.ImportErr)
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the grid to path and makes it the document's path. It
// writes even where the import failed, so front-ends call it with Path
// only after the user confirms.
func (d *Document) SaveAs(path string) error {
	if err := WriteFile(path, d.Grid, d.opts...); err != nil {
		return err
	}
	d.Path = path
	d.ImportErr = nil
	d.dirty = false
	return nil
}

// Close detaches the document's listeners from its grid.
func (d *Document) Close() {
	d.Replacer.Close()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}
