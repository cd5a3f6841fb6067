package records

import "go.uber.org/zap"

// Option configures Load and LoadReader.
type Option func(*config)

type config struct {
	skipBlank bool
	logger    *zap.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		skipBlank: true,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSkipBlank controls whether empty or whitespace-only lines are skipped
// (the default) or reported as a *dataio.ParseError.
func WithSkipBlank(skip bool) Option {
	return func(c *config) { c.skipBlank = skip }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
