package tabular

import (
	"go.uber.org/zap"

	"github.com/joiningdata/dataio/formats"
)

// Option configures Load, LoadReader, Inspect and SaveText.
type Option func(*config)

type config struct {
	delimiter rune
	comment   rune
	strict    bool
	skipRows  int
	format    string
	logger    *zap.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		strict: true,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) formatOptions() formats.Options {
	return formats.Options{Delimiter: c.delimiter, Comment: c.comment}
}

// WithDelimiter sets the field delimiter. The default is a comma for csv
// files and a tab for tsv files.
func WithDelimiter(d rune) Option {
	return func(c *config) { c.delimiter = d }
}

// WithComment ignores lines that begin with the given character.
func WithComment(r rune) Option {
	return func(c *config) { c.comment = r }
}

// WithStrict controls the row length check. When strict (the default) a row
// whose length differs from the first row fails with a *dataio.RowLengthError.
// Otherwise short rows are padded with NaN to the widest row.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithSkipRows skips the first n non-blank rows, typically a header.
func WithSkipRows(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.skipRows = n
		}
	}
}

// WithFormat selects a registered format by name instead of detecting it
// from the file extension. LoadReader uses csv unless told otherwise.
func WithFormat(name string) Option {
	return func(c *config) { c.format = name }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
