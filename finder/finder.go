package finder

import (
	"log/slog"

	"github.com/poiesic/phrasef/core"
)

// Finder scans texts for independent phrases.
type Finder struct {
	brace         core.Brace
	strictLeading bool
	monitor       ScanMonitor
	logger        *slog.Logger
}

// Option configures a Finder.
type Option func(*Finder) error

// WithHintBrace sets the strings wrapped around independent hits.
// Default is "[" and "]".
func WithHintBrace(prefix, suffix string) Option {
	return func(f *Finder) error {
		f.brace = core.Brace{Prefix: prefix, Suffix: suffix}
		return nil
	}
}

// WithStrictLeadingBoundary controls whether the character at index 0 is
// treated as the left neighbor of an occurrence starting at index 1.
//
// By default it is not: an occurrence at rune index 0 or 1 has no left
// neighbor, so "xDENT" yields a hit for "DENT". Enabling strict mode ignores
// the left neighbor only at index 0.
func WithStrictLeadingBoundary(strict bool) Option {
	return func(f *Finder) error {
		f.strictLeading = strict
		return nil
	}
}

// WithMonitor sets a monitor that observes every authoritative scan.
// A nil monitor disables monitoring.
func WithMonitor(monitor ScanMonitor) Option {
	return func(f *Finder) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		f.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// New creates a new finder.
func New(opts ...Option) (*Finder, error) {
	f := &Finder{
		brace:   core.DefaultBrace(),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// HintBrace returns the current brace.
func (f *Finder) HintBrace() core.Brace {
	return f.brace
}

// SetHintBrace replaces both sides of the brace used by subsequent scans.
func (f *Finder) SetHintBrace(prefix, suffix string) *Finder {
	f.brace = core.Brace{Prefix: prefix, Suffix: suffix}
	return f
}

// SetHintPrefix replaces the prefix and leaves the suffix unchanged.
func (f *Finder) SetHintPrefix(prefix string) *Finder {
	f.brace.Prefix = prefix
	return f
}

// SetHintSuffix replaces the suffix and leaves the prefix unchanged.
func (f *Finder) SetHintSuffix(suffix string) *Finder {
	f.brace.Suffix = suffix
	return f
}

// ResetHintBrace restores the default "[" / "]" brace.
func (f *Finder) ResetHintBrace() *Finder {
	f.brace = core.DefaultBrace()
	return f
}

// StrictLeadingBoundary reports whether strict leading boundary mode is on.
func (f *Finder) StrictLeadingBoundary() bool {
	return f.strictLeading
}
