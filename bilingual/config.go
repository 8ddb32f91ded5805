package bilingual

import (
	"github.com/sirupsen/logrus"

	"github.com/eske/multivec-go/werrors"
)

// Config is the immutable set of knobs for a Model: how many workers
// DictionaryInduction may use, and how verbosely the mapping fit
// reports its progress. Built once via NewConfig, never mutated
// afterwards, same shape as word2vec.Config.
type Config struct {
	Threads int
	Verbose bool

	log *logrus.Logger
}

// Option configures a Config under construction.
type Option func(*Config)

// WithThreads sets the parallelism of DictionaryInduction.
func WithThreads(n int) Option { return func(c *Config) { c.Threads = n } }

// WithVerbose raises mapping-fit logging to Info level.
func WithVerbose(on bool) Option { return func(c *Config) { c.Verbose = on } }

// NewConfig applies opts over a set of defaults and validates the
// result, returning an InvalidInput error if the configuration is
// unsatisfiable.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Threads: 1, Verbose: false}
	for _, opt := range opts {
		opt(c)
	}

	if c.Threads < 1 {
		return nil, werrors.New(werrors.InvalidInput, "bilingual.NewConfig", "threads must be >= 1")
	}

	c.log = logrus.New()
	if c.Verbose {
		c.log.SetLevel(logrus.InfoLevel)
	} else {
		c.log.SetLevel(logrus.WarnLevel)
	}
	return c, nil
}
