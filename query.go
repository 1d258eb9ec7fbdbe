package xlgrid

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query is a compiled boolean expression evaluated against one row at a
// time. Expressions use expr-lang syntax and see:
//
//	row    map of header → cell value (leftmost column wins on duplicates)
//	cells  the row's values in column order
//	index  0-based row index
//	num(s) s parsed as a float, 0 if it is not a number
//	empty(s) whether s is blank after trimming spaces
//
// Example: `num(row.Qty) > 10 && row.Status != "done"`.
type Query struct {
	src     string
	program *vm.Program
}

var programCache sync.Map // expression source → *vm.Program

// CompileQuery compiles src. Programs are cached by source text.
func CompileQuery(src string) (*Query, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty query")
	}
	if cached, ok := programCache.Load(src); ok {
		return &Query{src: src, program: cached.(*vm.Program)}, nil
	}
	program, err := expr.Compile(src, expr.Env(queryEnv(nil, nil, 0)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", src, err)
	}
	programCache.Store(src, program)
	return &Query{src: src, program: program}, nil
}

// String returns the query source.
func (q *Query) String() string { return q.src }

// Match evaluates the query against row r of g.
func (q *Query) Match(g *Grid, r int) (bool, error) {
	if err := g.checkRow(r); err != nil {
		return false, err
	}
	out, err := expr.Run(q.program, queryEnv(g.headers, g.rows[r], r))
	if err != nil {
		return false, fmt.Errorf("evaluate query %q on row %d: %w", q.src, r, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("query %q evaluated to %T, expected bool", q.src, out)
	}
	return b, nil
}

// Select returns the indices of all rows of g that q accepts.
func Select(g *Grid, q *Query) ([]int, error) {
	var out []int
	for r := range g.rows {
		ok, err := q.Match(g, r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func queryEnv(headers, cells []string, index int) map[string]any {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if _, dup := row[h]; !dup && i < len(cells) {
			row[h] = cells[i]
		}
	}
	if cells == nil {
		cells = []string{}
	}
	return map[string]any{
		"row":   row,
		"cells": cells,
		"index": index,
		"num":   parseNum,
		"empty": isBlank,
	}
}

func parseNum(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
