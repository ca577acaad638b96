package factmap

import (
	"time"

	"github.com/agentstation/factmap/internal/egrul"
	"github.com/agentstation/factmap/internal/readers"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// Option is a function that configures a Factmap instance.
type Option func(*config) error

// config holds facade configuration assembled from options.
type config struct {
	reconcileOptions []reconcile.Option
	csvOptions       []readers.CSVOption
	egrulOptions     []egrul.Option
	liveLookups      bool
}

func defaultConfig() *config {
	return &config{}
}

func (f *factmap) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(f.config); err != nil {
			return err
		}
	}
	return nil
}

// WithTracking enables field-level provenance tracking.
func WithTracking(enabled bool) Option {
	return func(c *config) error {
		c.reconcileOptions = append(c.reconcileOptions, reconcile.WithTracking(enabled))
		return nil
	}
}

// WithReconcileOptions passes options through to the underlying reconciler,
// such as a custom hierarchy for experiments.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.reconcileOptions = append(c.reconcileOptions, opts...)
		return nil
	}
}

// WithCSVDelimiter sets the delimiter used when reading CSV files.
// Registry exports commonly use ';'.
func WithCSVDelimiter(comma rune) Option {
	return func(c *config) error {
		c.csvOptions = append(c.csvOptions, readers.WithComma(comma))
		return nil
	}
}

// WithWindows1251CSV decodes CSV files from windows-1251 instead of UTF-8.
func WithWindows1251CSV() Option {
	return func(c *config) error {
		c.csvOptions = append(c.csvOptions, readers.WithWindows1251())
		return nil
	}
}

// WithLiveLookups augments file observations with a live EGRUL lookup per
// company before reconciling.
func WithLiveLookups(enabled bool) Option {
	return func(c *config) error {
		c.liveLookups = enabled
		return nil
	}
}

// WithEGRULBaseURL overrides the EGRUL endpoint used for live lookups.
func WithEGRULBaseURL(url string) Option {
	return func(c *config) error {
		c.egrulOptions = append(c.egrulOptions, egrul.WithBaseURL(url))
		return nil
	}
}

// WithEGRULRateLimit sets the minimum interval between live EGRUL lookups.
func WithEGRULRateLimit(interval time.Duration) Option {
	return func(c *config) error {
		c.egrulOptions = append(c.egrulOptions, egrul.WithRateLimit(interval))
		return nil
	}
}
