package xlgrid

import (
	"fmt"
	"strings"
)

// DescribeFile reads a spreadsheet file and returns a human-readable
// summary of its table. Useful for checking what an import will produce.
func DescribeFile(path string, maxRows int, opts ...Option) (string, error) {
	g, err := ReadFile(path, opts...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("File: ")
	b.WriteString(path)
	b.WriteByte('\n')
	b.WriteString(Describe(g, maxRows))
	return b.String(), nil
}

// Describe returns a human-readable summary of g: its size, the headers
// with their column letters, the first maxRows rows, and any lint issues.
// maxRows <= 0 lists no rows.
func Describe(g *Grid, maxRows int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table %s: %d columns, %d rows\n", g.Size(), g.ColumnCount(), g.RowCount())

	if g.ColumnCount() > 0 {
		b.WriteString("  Columns:\n")
		for c, h := range g.headers {
			fmt.Fprintf(&b, "    %s: %q\n", ColToName(c), h)
		}
	}

	if n := min(maxRows, g.RowCount()); n > 0 {
		b.WriteString("  Rows:\n")
		for r := 0; r < n; r++ {
			fmt.Fprintf(&b, "    %d: %s\n", r+1, describeRow(g.rows[r]))
		}
		if rest := g.RowCount() - n; rest > 0 {
			fmt.Fprintf(&b, "    ... %d more\n", rest)
		}
	}

	if issues := Lint(g); len(issues) > 0 {
		b.WriteString("  Issues:\n")
		for _, is := range issues {
			b.WriteString("    ")
			b.WriteString(is.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func describeRow(row []string) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(parts, " ")
}
