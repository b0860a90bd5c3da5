package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/phrasef/core"
	"github.com/poiesic/phrasef/finder"
	"github.com/poiesic/phrasef/storage"
)

// Scanner scans batches of documents concurrently.
// The finder is shared by every worker and must not have its hint brace
// changed while a Scan is running.
type Scanner struct {
	finder     *finder.Finder
	repository storage.ScanRepository
	pool       *ants.Pool
	config     *Config
	progress   io.Writer
	logger     *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner) error

// WithPoolSize sets the worker pool size for concurrent scanning.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Scanner) error {
		s.config.PoolSize = max(size, 1)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRepository persists every scanned batch to repo.
func WithRepository(repo storage.ScanRepository) Option {
	return func(s *Scanner) error {
		s.repository = repo
		return nil
	}
}

// WithProgress reports progress to w every interval documents.
// A nil writer disables reporting.
func WithProgress(w io.Writer, interval int) Option {
	return func(s *Scanner) error {
		s.progress = w
		s.config.ReportInterval = interval
		return nil
	}
}

// WithRetry sets how persisting a batch is retried.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *Scanner) error {
		s.config.MaxRetries = maxAttempts
		s.config.RetryDelay = baseDelay
		return nil
	}
}

// WithConfig replaces the whole configuration. Options applied after it
// still override individual fields.
func WithConfig(cfg *Config) Option {
	return func(s *Scanner) error {
		if cfg == nil {
			return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
		}
		c := *cfg
		s.config = &c
		return nil
	}
}

// NewScanner creates a Scanner around f.
func NewScanner(f *finder.Finder, opts ...Option) (*Scanner, error) {
	if f == nil {
		return nil, ErrFinderRequired
	}

	s := &Scanner{
		finder: f,
		config: DefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(s.config.PoolSize)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	return s, nil
}

// Config returns a copy of the scanner's configuration.
func (s *Scanner) Config() Config {
	return *s.config
}

// Scan scans every document for phrases and returns one record per document,
// in the order of docs. Documents and phrases are validated before any work
// is submitted. If ctx ends while documents are still being submitted, Scan
// waits for the running ones and returns ctx.Err().
func (s *Scanner) Scan(ctx context.Context, docs []core.Document, phrases []string) ([]*core.ScanRecord, error) {
	if err := core.ValidatePhrases(phrases); err != nil {
		return nil, err
	}
	for i := range docs {
		if err := core.ValidateDocument(&docs[i]); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	if len(docs) == 0 {
		return []*core.ScanRecord{}, nil
	}

	brace := s.finder.HintBrace()
	records := make([]*core.ScanRecord, len(docs))
	errs := make([]error, len(docs))

	var tracker *ProgressTracker
	if s.progress != nil {
		tracker = NewProgressTracker(s.progress, len(docs), s.config.ReportInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	s.logger.Debug("starting batch scan", "documents", len(docs), "phrases", len(phrases))

	var wg sync.WaitGroup
	var submitErr error
submit:
	for i := range docs {
		select {
		case <-ctx.Done():
			submitErr = ctx.Err()
			break submit
		default:
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			records[i], errs[i] = s.scanDocument(docs[i], phrases, brace)
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if s.repository != nil {
		if err := s.persist(ctx, records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (s *Scanner) scanDocument(doc core.Document, phrases []string, brace core.Brace) (*core.ScanRecord, error) {
	rs, err := s.finder.ScanPhrases(doc.Text, phrases)
	if err != nil {
		s.logger.Error("error scanning document", "document", doc.Name, "err", err)
		return nil, fmt.Errorf("document %q: %w", doc.Name, err)
	}
	record := core.NewScanRecord(doc, phrases, rs, brace)
	record.ScannedAt = time.Now().UTC()
	return record, nil
}

func (s *Scanner) persist(ctx context.Context, records []*core.ScanRecord) error {
	err := RetryWithBackoff(ctx, func() error {
		_, err := s.repository.AddScanRecords(ctx, records...)
		return err
	}, s.config.MaxRetries, s.config.RetryDelay)
	if err != nil {
		s.logger.Error("error storing scan records", "count", len(records), "err", err)
		return err
	}
	s.logger.Debug("stored batch", "count", len(records))
	return nil
}

// Release releases the worker pool.
// The scanner should not be used after calling Release.
func (s *Scanner) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// ReleaseTimeout releases the worker pool and waits up to timeout for its
// goroutines to exit.
func (s *Scanner) ReleaseTimeout(timeout time.Duration) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.ReleaseTimeout(timeout)
}
