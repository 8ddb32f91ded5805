package word2vec

import (
	"github.com/sirupsen/logrus"

	"github.com/eske/multivec-go/werrors"
)

// Config is the immutable set of training/query knobs for a Model.
// It is built once via NewConfig and referenced for the model's
// lifetime; nothing mutates it afterwards.
type Config struct {
	Dimension            int
	MinCount             int64
	WindowSize           int
	Negative             int
	HierarchicalSoftmax  bool
	SkipGram             bool
	SentVector           bool
	Subsampling          float64
	LearningRate         float64
	Iterations           int
	Threads              int
	NoAverage            bool
	Verbose              bool
	SyncSGD              bool

	log *logrus.Logger
}

// Option configures a Config under construction.
type Option func(*Config)

// WithDimension sets the embedding width D.
func WithDimension(d int) Option { return func(c *Config) { c.Dimension = d } }

// WithMinCount sets the vocabulary pruning threshold.
func WithMinCount(n int64) Option { return func(c *Config) { c.MinCount = n } }

// WithWindowSize sets the maximum context radius.
func WithWindowSize(w int) Option { return func(c *Config) { c.WindowSize = w } }

// WithNegative sets the number of negative samples per positive (0 disables).
func WithNegative(n int) Option { return func(c *Config) { c.Negative = n } }

// WithHierarchicalSoftmax enables the HS objective.
func WithHierarchicalSoftmax(on bool) Option { return func(c *Config) { c.HierarchicalSoftmax = on } }

// WithSkipGram selects skip-gram (or, combined with sent vectors, DBOW) over CBOW.
func WithSkipGram(on bool) Option { return func(c *Config) { c.SkipGram = on } }

// WithSentVector enables joint per-sentence vector training.
func WithSentVector(on bool) Option { return func(c *Config) { c.SentVector = on } }

// WithSubsampling sets the frequent-word downsampling threshold (0 disables).
func WithSubsampling(s float64) Option { return func(c *Config) { c.Subsampling = s } }

// WithLearningRate sets the initial learning rate.
func WithLearningRate(a float64) Option { return func(c *Config) { c.LearningRate = a } }

// WithIterations sets the number of epochs over the corpus.
func WithIterations(n int) Option { return func(c *Config) { c.Iterations = n } }

// WithThreads sets the number of parallel training workers.
func WithThreads(n int) Option { return func(c *Config) { c.Threads = n } }

// WithNoAverage selects CBOW context sum over mean.
func WithNoAverage(on bool) Option { return func(c *Config) { c.NoAverage = on } }

// WithVerbose raises logging to Info level.
func WithVerbose(on bool) Option { return func(c *Config) { c.Verbose = on } }

// WithSyncSGD enables per-matrix locking for reproducible training.
func WithSyncSGD(on bool) Option { return func(c *Config) { c.SyncSGD = on } }

// NewConfig applies opts over a set of defaults and validates the
// result, returning an InvalidInput error if the configuration is
// unsatisfiable.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Dimension:           100,
		MinCount:            5,
		WindowSize:          5,
		Negative:            5,
		HierarchicalSoftmax: false,
		SkipGram:            false,
		SentVector:          false,
		Subsampling:         1e-3,
		LearningRate:        0.025,
		Iterations:          1,
		Threads:             1,
		NoAverage:           false,
		Verbose:             false,
		SyncSGD:             false,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	c.log = logrus.New()
	if c.Verbose {
		c.log.SetLevel(logrus.InfoLevel)
	} else {
		c.log.SetLevel(logrus.WarnLevel)
	}
	return c, nil
}

func (c *Config) validate() error {
	const op = "word2vec.NewConfig"
	switch {
	case c.Dimension <= 0:
		return werrors.New(werrors.InvalidInput, op, "dimension must be positive")
	case c.MinCount < 0:
		return werrors.New(werrors.InvalidInput, op, "min_count must be >= 0")
	case c.WindowSize < 1:
		return werrors.New(werrors.InvalidInput, op, "window_size must be >= 1")
	case c.Negative < 0:
		return werrors.New(werrors.InvalidInput, op, "negative must be >= 0")
	case !c.HierarchicalSoftmax && c.Negative == 0:
		return werrors.New(werrors.InvalidInput, op, "at least one of negative or hierarchical_softmax must be enabled")
	case c.Subsampling < 0:
		return werrors.New(werrors.InvalidInput, op, "subsampling must be >= 0")
	case c.LearningRate <= 0:
		return werrors.New(werrors.InvalidInput, op, "learning_rate must be > 0")
	case c.Iterations < 1:
		return werrors.New(werrors.InvalidInput, op, "iterations must be >= 1")
	case c.Threads < 1:
		return werrors.New(werrors.InvalidInput, op, "threads must be >= 1")
	}
	return nil
}

// requiresOutputWeights reports whether policy p needs output_weights
// to be present, which only happens when negative sampling is on.
func requiresOutputWeights(p VectorPolicy, negative int) error {
	if p == PolicyInput {
		return nil
	}
	if negative <= 0 {
		return werrors.New(werrors.InvalidInput, "word2vec.wordVec", "policy requires negative>0")
	}
	return nil
}
