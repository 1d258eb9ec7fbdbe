// Package config resolves user-facing labels and keyboard shortcuts by
// dotted key, e.g. "table.find". Built-in defaults are embedded; user files
// are overlaid on top of them.
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrKeyMissing is returned when a key does not resolve to a string.
var ErrKeyMissing = errors.New("config key missing")

//go:embed defaults/*.yaml
var defaults embed.FS

// RequiredLabels must resolve in every label set.
var RequiredLabels = []string{
	"main_window.title",
	"bar.file_menu.save",
	"bar.file_menu.upload",
	"table_context_menu.remove",
	"table_context_menu.add_above",
	"table_context_menu.add_below",
	"table_loader.dialog",
	"finder_dialog.title",
	"finder_dialog.value",
	"finder_dialog.find",
	"finder_dialog.arrow_up",
	"finder_dialog.arrow_down",
	"replace_dialog.title",
	"replace_dialog.old",
	"replace_dialog.new",
	"replace_dialog.change",
	"replace_dialog.change_all",
}

// RequiredShortcuts must resolve in every shortcut set.
var RequiredShortcuts = []string{
	"bar.file_menu.save",
	"bar.file_menu.quit",
	"table.find",
	"table.replace",
	"table.remove_row",
	"table.add_row_below",
	"table.add_row_above",
}

// Resources holds the label and shortcut trees.
type Resources struct {
	labels    map[string]any
	shortcuts map[string]any
}

// Default returns the embedded labels and shortcuts.
func Default() (*Resources, error) {
	return Load("", "")
}

// Load reads the embedded defaults and overlays the YAML files at
// labelsPath and shortcutsPath when they are non-empty. Every required key
// is checked; a missing one is returned as ErrKeyMissing.
func Load(labelsPath, shortcutsPath string) (*Resources, error) {
	labels, err := loadTree("defaults/labels.yaml", labelsPath)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	shortcuts, err := loadTree("defaults/shortcuts.yaml", shortcutsPath)
	if err != nil {
		return nil, fmt.Errorf("load shortcuts: %w", err)
	}
	r := &Resources{labels: labels, shortcuts: shortcuts}
	if err := r.Check(RequiredLabels, RequiredShortcuts); err != nil {
		return nil, err
	}
	return r, nil
}

// Parse builds Resources from YAML documents without the embedded
// defaults. Nothing is checked; call Check for that.
func Parse(labels, shortcuts []byte) (*Resources, error) {
	l, err := parseTree(labels)
	if err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	s, err := parseTree(shortcuts)
	if err != nil {
		return nil, fmt.Errorf("parse shortcuts: %w", err)
	}
	return &Resources{labels: l, shortcuts: s}, nil
}

// Check verifies that all the given label and shortcut keys resolve.
func (r *Resources) Check(labels, shortcuts []string) error {
	var errs []error
	for _, k := range labels {
		if _, err := r.Label(k); err != nil {
			errs = append(errs, err)
		}
	}
	for _, k := range shortcuts {
		if _, err := r.Shortcut(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Label returns the label stored under key.
func (r *Resources) Label(key string) (string, error) {
	v, err := lookup(r.labels, key)
	if err != nil {
		return "", fmt.Errorf("label: %w", err)
	}
	return v, nil
}

// Shortcut returns the key sequence stored under key.
func (r *Resources) Shortcut(key string) (string, error) {
	v, err := lookup(r.shortcuts, key)
	if err != nil {
		return "", fmt.Errorf("shortcut: %w", err)
	}
	return v, nil
}

// LabelOr returns the label under key, or fallback if it is missing.
func (r *Resources) LabelOr(key, fallback string) string {
	if v, err := r.Label(key); err == nil {
		return v
	}
	return fallback
}

// Keys returns the shortcut under key split into individual key names
// ("ctrl+f, f3" → ["ctrl+f", "f3"]). Missing keys yield fallback.
func (r *Resources) Keys(key string, fallback ...string) []string {
	v, err := r.Shortcut(key)
	if err != nil {
		return fallback
	}
	if v != "" && strings.TrimSpace(v) == "" {
		// A lone space is the space bar.
		return []string{v[:1]}
	}
	var out []string
	for _, k := range strings.Split(v, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func lookup(tree map[string]any, key string) (string, error) {
	var cur any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrKeyMissing, key)
		}
		if cur, ok = m[part]; !ok {
			return "", fmt.Errorf("%w: %s", ErrKeyMissing, key)
		}
	}
	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrKeyMissing, key)
	}
	return s, nil
}

func loadTree(defaultName, overlayPath string) (map[string]any, error) {
	data, err := defaults.ReadFile(defaultName)
	if err != nil {
		return nil, err
	}
	tree, err := parseTree(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", defaultName, err)
	}
	if overlayPath == "" {
		return tree, nil
	}
	data, err = os.ReadFile(overlayPath)
	if err != nil {
		return nil, err
	}
	overlay, err := parseTree(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", overlayPath, err)
	}
	merge(tree, overlay)
	return tree, nil
}

func parseTree(data []byte) (map[string]any, error) {
	tree := map[string]any{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// merge copies src into dst, descending into maps present on both sides.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sm, srcIsMap := v.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			merge(dm, sm)
			continue
		}
		dst[k] = v
	}
}
