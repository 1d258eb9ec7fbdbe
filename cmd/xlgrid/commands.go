package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/internal/tui"
)

func newEditCommand(a *app) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Open FILE in the terminal editor (created on first save if missing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resources()
			if err != nil {
				return err
			}

			a.logger = discardLogger()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				level := slog.LevelInfo
				if a.verbose {
					level = slog.LevelDebug
				}
				a.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
			}

			opts, err := a.options()
			if err != nil {
				return err
			}
			doc := xlgrid.Open(args[0], opts...)
			defer doc.Close()
			return tui.Run(doc, res)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while editing")
	return cmd
}

func newInfoCommand(a *app) *cobra.Command {
	var maxRows int
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Describe the table in FILE and report header problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			out, err := xlgrid.DescribeFile(args[0], maxRows, opts...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxRows, "rows", "n", 5, "number of rows to print")
	return cmd
}

func newFindCommand(a *app) *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "find FILE TEXT",
		Short: "Print the cells whose value equals TEXT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := a.read(args[0])
			if err != nil {
				return err
			}
			f := xlgrid.NewFinder(g)
			defer f.Close()

			var matches []xlgrid.Coord
			if where != "" {
				q, err := xlgrid.CompileQuery(where)
				if err != nil {
					return err
				}
				matches = f.FindWhere(q, args[1])
			} else {
				matches = f.Find(args[1])
			}
			for _, c := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			a.logger.Debug("find done", "text", args[1], "matches", len(matches))
			return nil
		},
	}
	cmd.Flags().StringVarP(&where, "where", "w", "", "only search rows matching this expression")
	return cmd
}

func newReplaceCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "replace FILE OLD NEW",
		Short: "Replace every cell equal to OLD with NEW",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			n := xlgrid.ReplaceAll(g, args[1], args[2])
			fmt.Fprintf(cmd.OutOrStdout(), "replaced %d cells\n", n)
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newMoveCommand(a *app) *cobra.Command {
	var (
		rows   string
		where  string
		before int
		onto   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "move FILE",
		Short: "Move rows, keeping their order, before a row or onto a row",
		Long: "Row numbers are 1-based and count data rows only.\n" +
			"--before N puts the rows directly above row N (one past the last row appends).\n" +
			"--onto N drops them on row N: after it when moving down, before it when moving up.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			beforeSet, ontoSet := cmd.Flags().Changed("before"), cmd.Flags().Changed("onto")
			if beforeSet == ontoSet {
				return errors.New("exactly one of --before or --onto is required")
			}
			if (beforeSet && before < 1) || (ontoSet && onto < 1) {
				return errors.New("row numbers start at 1")
			}
			if (rows == "") == (where == "") {
				return errors.New("exactly one of --rows or --where is required")
			}

			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			var sources []int
			if rows != "" {
				if sources, err = parseRows(rows); err != nil {
					return err
				}
			} else {
				q, err := xlgrid.CompileQuery(where)
				if err != nil {
					return err
				}
				if sources, err = xlgrid.Select(g, q); err != nil {
					return err
				}
			}

			e := xlgrid.NewEditor(g, opts...)
			var n int
			if beforeSet {
				n, err = e.MoveRowsBefore(sources, before-1)
			} else {
				n, err = e.MoveRows(sources, onto-1)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %d rows\n", n)
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	f := cmd.Flags()
	f.StringVar(&rows, "rows", "", "comma-separated row numbers, e.g. 1,2,5")
	f.StringVarP(&where, "where", "w", "", "move the rows matching this expression")
	f.IntVar(&before, "before", 0, "row number to move the rows above")
	f.IntVar(&onto, "onto", 0, "row number to drop the rows on")
	addOutputFlag(cmd, &output)
	return cmd
}

func newRowsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Add or remove rows",
	}

	var (
		at     int
		below  bool
		output string
	)
	add := &cobra.Command{
		Use:   "add FILE",
		Short: "Insert an empty row above row --at (default: append)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			p := xlgrid.Above
			if below {
				p = xlgrid.Below
			}
			r, err := xlgrid.NewEditor(g, opts...).AddRow(rowIndex(at), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added row %d\n", r+1)
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	add.Flags().IntVar(&at, "at", 0, "1-based row number (0 = end)")
	add.Flags().BoolVar(&below, "below", false, "insert below --at instead of above")
	addOutputFlag(add, &output)

	remove := &cobra.Command{
		Use:   "remove FILE",
		Short: "Remove row --at (default: the last row)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			if err := xlgrid.NewEditor(g, opts...).RemoveRow(rowIndex(at)); err != nil {
				return err
			}
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	remove.Flags().IntVar(&at, "at", 0, "1-based row number (0 = last)")
	addOutputFlag(remove, &output)

	cmd.AddCommand(add, remove)
	return cmd
}

func newColsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cols",
		Short: "Add or remove columns",
	}

	var (
		at     string
		before bool
		header string
		output string
	)
	add := &cobra.Command{
		Use:   "add FILE",
		Short: "Insert a column after column --at (default: append)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := colIndex(at)
			if err != nil {
				return err
			}
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			p := xlgrid.After
			if before {
				p = xlgrid.Before
			}
			c, err = xlgrid.NewEditor(g, opts...).AddColumn(c, p, header)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added column %s\n", xlgrid.ColToName(c))
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	add.Flags().StringVar(&at, "at", "", "column letter, e.g. B (empty = end)")
	add.Flags().BoolVar(&before, "before", false, "insert before --at instead of after")
	add.Flags().StringVar(&header, "header", "", "name of the new column")
	addOutputFlag(add, &output)

	remove := &cobra.Command{
		Use:   "remove FILE",
		Short: "Remove column --at (default: the last column)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := colIndex(at)
			if err != nil {
				return err
			}
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			if err := xlgrid.NewEditor(g, opts...).RemoveColumn(c); err != nil {
				return err
			}
			return xlgrid.WriteFile(outputPath(output, args[0]), g, opts...)
		},
	}
	remove.Flags().StringVar(&at, "at", "", "column letter (empty = last)")
	addOutputFlag(remove, &output)

	cmd.AddCommand(add, remove)
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a table between formats, chosen by file extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, err := a.read(args[0])
			if err != nil {
				return err
			}
			return xlgrid.WriteFile(args[1], g, opts...)
		},
	}
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "", "write the result here instead of overwriting FILE")
}

func outputPath(output, input string) string {
	if output != "" {
		return output
	}
	return input
}

// parseRows turns "1,2, 5" into 0-based row indexes.
func parseRows(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid row number %q", part)
		}
		out = append(out, n-1)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no row numbers in %q", s)
	}
	return out, nil
}

// rowIndex maps a 1-based row flag to an Editor index; 0 means End/Last.
func rowIndex(n int) int {
	if n <= 0 {
		return xlgrid.End
	}
	return n - 1
}

// colIndex maps a column letter flag to an Editor index; "" means End/Last.
func colIndex(name string) (int, error) {
	if name == "" {
		return xlgrid.End, nil
	}
	return xlgrid.NameToCol(name)
}
