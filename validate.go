package xlgrid

import (
	"fmt"
	"strings"
)

// Severity indicates the severity of a lint issue.
type Severity int

const (
	SeverityError   Severity = iota // Export or queries will misbehave
	SeverityWarning                 // Allowed, but probably unintended
)

// Issue is a single problem found by Lint.
type Issue struct {
	Severity Severity
	Col      int // -1 when the issue is not tied to a column
	Message  string
}

// String formats the issue as "[WARN] B: message".
func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	if i.Col < 0 {
		return fmt.Sprintf("[%s] %s", sev, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", sev, ColToName(i.Col), i.Message)
}

// Lint checks the headers of g. Headers do not have to be unique or
// non-empty, so nothing reported here blocks editing; duplicates only make
// the later columns unreachable by name in row queries.
func Lint(g *Grid) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(g.headers))
	for c, h := range g.headers {
		if h == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Col:      c,
				Message:  "empty header",
			})
			continue
		}
		if strings.TrimSpace(h) != h {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Col:      c,
				Message:  fmt.Sprintf("header %q has surrounding spaces", h),
			})
		}
		if first, dup := seen[h]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Col:      c,
				Message:  fmt.Sprintf("duplicate header %q (first in column %s); queries see only the first", h, ColToName(first)),
			})
			continue
		}
		seen[h] = c
	}
	if g.ColumnCount() == 0 && g.RowCount() > 0 {
		issues = append(issues, Issue{Severity: SeverityError, Col: -1, Message: "rows without columns"})
	}
	return issues
}
