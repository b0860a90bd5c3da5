// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package phrasef

import (
	"log/slog"

	"github.com/poiesic/phrasef/batch"
	"github.com/poiesic/phrasef/finder"
	"github.com/poiesic/phrasef/storage"
	"github.com/poiesic/phrasef/storage/badger"
)

// Archive bundles a finder with a badger-backed store of scan records.
type Archive struct {
	backend  *badger.Backend
	scanRepo storage.ScanRepository
	finder   *finder.Finder
	logger   *slog.Logger
}

// ArchiveOption configures an Archive.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	inMemory      bool
	finderOptions []finder.Option
	logger        *slog.Logger
}

// WithInMemory keeps the archive in memory. The path passed to Open is ignored.
func WithInMemory() ArchiveOption {
	return func(o *archiveOptions) {
		o.inMemory = true
	}
}

// WithFinderOptions configures the archive's finder.
func WithFinderOptions(opts ...finder.Option) ArchiveOption {
	return func(o *archiveOptions) {
		o.finderOptions = append(o.finderOptions, opts...)
	}
}

// WithLogger sets the logger shared by the archive, its finder and its storage.
func WithLogger(logger *slog.Logger) ArchiveOption {
	return func(o *archiveOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Open opens or creates the archive stored in the directory filePath.
func Open(filePath string, opts ...ArchiveOption) (*Archive, error) {
	options := &archiveOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Finder options are applied after the logger so callers can override it
	finderOpts := append([]finder.Option{finder.WithLogger(options.logger)}, options.finderOptions...)
	f, err := finder.New(finderOpts...)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	scanRepo, err := badger.NewScanRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Archive{
		backend:  backend,
		scanRepo: scanRepo,
		finder:   f,
		logger:   options.logger,
	}, nil
}

// Close releases the repository and closes the backend.
func (a *Archive) Close() error {
	if err := a.scanRepo.Close(); err != nil {
		a.logger.Error("error closing scan repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Finder returns the archive's finder.
func (a *Archive) Finder() *finder.Finder {
	return a.finder
}

// Repository returns the archive's scan record repository.
func (a *Archive) Repository() storage.ScanRepository {
	return a.scanRepo
}

// NewBatchScanner creates a batch scanner that stores its results in the archive.
func (a *Archive) NewBatchScanner(opts ...batch.Option) (*batch.Scanner, error) {
	base := []batch.Option{batch.WithLogger(a.logger), batch.WithRepository(a.scanRepo)}
	return batch.NewScanner(a.finder, append(base, opts...)...)
}
