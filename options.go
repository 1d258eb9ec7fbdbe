package xlgrid

import "log/slog"

// Options holds configuration shared by file I/O and the editing helpers.
type Options struct {
	sheet  string
	comma  rune
	links  bool
	logger *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		comma:  ',',
		logger: slog.Default(),
	}
}

func buildOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures file I/O and editing helpers.
type Option func(*Options)

// WithSheet selects the worksheet to read or the name of the sheet to write
// (default: the first sheet when reading, "Sheet1" when writing).
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithComma sets the CSV field delimiter (default: ',').
func WithComma(r rune) Option {
	return func(o *Options) { o.comma = r }
}

// WithHyperlinks makes xlsx export turn cells holding an http, https or
// mailto URL into clickable links. The cell text is unchanged.
func WithHyperlinks() Option {
	return func(o *Options) { o.links = true }
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
