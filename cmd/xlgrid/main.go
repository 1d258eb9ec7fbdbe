// Command xlgrid edits spreadsheet tables from the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
	"github.com/javajack/xlgrid/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the flags shared by every subcommand.
type app struct {
	verbose bool
	sheet   string
	comma   string
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "xlgrid",
		Short:        "View and edit spreadsheet tables (.xlsx, .xls, .csv)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if err := godotenv.Load(); err != nil {
				a.logger.Debug("no .env file loaded", "err", err)
			}
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	f.StringVar(&a.sheet, "sheet", "", "worksheet to read or write (default: first sheet)")
	f.StringVar(&a.comma, "comma", ",", "field separator for csv files")

	cmd.AddCommand(newEditCommand(a))
	cmd.AddCommand(newInfoCommand(a))
	cmd.AddCommand(newFindCommand(a))
	cmd.AddCommand(newReplaceCommand(a))
	cmd.AddCommand(newMoveCommand(a))
	cmd.AddCommand(newRowsCommand(a))
	cmd.AddCommand(newColsCommand(a))
	cmd.AddCommand(newConvertCommand(a))
	return cmd
}

func (a *app) options() ([]xlgrid.Option, error) {
	opts := []xlgrid.Option{xlgrid.WithLogger(a.logger)}
	if a.sheet != "" {
		opts = append(opts, xlgrid.WithSheet(a.sheet))
	}
	r, size := utf8.DecodeRuneInString(a.comma)
	if r == utf8.RuneError || size != len(a.comma) {
		return nil, fmt.Errorf("--comma must be a single character, got %q", a.comma)
	}
	return append(opts, xlgrid.WithComma(r)), nil
}

// resources loads labels and shortcuts, overlaying the files named by
// XLGRID_LABELS and XLGRID_SHORTCUTS.
func (a *app) resources() (*config.Resources, error) {
	res, err := config.Load(os.Getenv("XLGRID_LABELS"), os.Getenv("XLGRID_SHORTCUTS"))
	if err != nil {
		return nil, fmt.Errorf("load ui config: %w", err)
	}
	return res, nil
}

// read loads path with the shared options.
func (a *app) read(path string) (*xlgrid.Grid, []xlgrid.Option, error) {
	opts, err := a.options()
	if err != nil {
		return nil, nil, err
	}
	g, err := xlgrid.ReadFile(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	return g, opts, nil
}

// discardLogger is used while the terminal front-end owns the screen.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
