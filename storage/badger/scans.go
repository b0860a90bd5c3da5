package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/phrasef/core"
	"github.com/poiesic/phrasef/storage"
)

// ScanRepository implements storage.ScanRepository for BadgerDB.
type ScanRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ScanRepository = (*ScanRepository)(nil)

// NewScanRepository creates a new ScanRepository.
func NewScanRepository(backend *Backend) (*ScanRepository, error) {
	idSeq, err := backend.GetSequence(scanRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &ScanRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ScanRepository) Close() error {
	return r.idSeq.Release()
}

func (r *ScanRepository) nextID() (core.ID, error) {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = r.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// AddScanRecords adds one or more scan records to storage.
func (r *ScanRepository) AddScanRecords(ctx context.Context, records ...*core.ScanRecord) ([]*core.ScanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := core.ValidateScanRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			id, err := r.nextID()
			if err != nil {
				return err
			}
			record.Id = id
			if record.ScannedAt.IsZero() {
				record.ScannedAt = time.Now().UTC()
			}

			// Store primary record
			if err := tx.Set(makeScanRecordKey(record.Id), storage.MarshalScanRecord(record)); err != nil {
				return err
			}

			if err := r.updateIndices(tx, record); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("stored scan records", "count", len(records))
	return records, nil
}

// DeleteScanRecords removes scan records by their IDs.
func (r *ScanRepository) DeleteScanRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeScanRecordKey(id)

			// Read record to get metadata for index cleanup
			record, err := r.readScanRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := r.deleteIndices(tx, record); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetScanRecord retrieves a single scan record by ID.
func (r *ScanRepository) GetScanRecord(ctx context.Context, id core.ID) (*core.ScanRecord, error) {
	var result *core.ScanRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readScanRecord(tx, makeScanRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetScanRecords retrieves multiple scan records by their IDs.
func (r *ScanRepository) GetScanRecords(ctx context.Context, ids ...core.ID) ([]*core.ScanRecord, error) {
	var result []*core.ScanRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readScanRecord(tx, makeScanRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetScanRecordsByPhrase retrieves IDs of scan records in which phrase had an
// independent hit.
func (r *ScanRepository) GetScanRecordsByPhrase(ctx context.Context, phrase string) ([]core.ID, error) {
	return r.scanIndex(makePartialPhraseKey(phrase))
}

// GetScanRecordsByDocument retrieves IDs of scan records for a document content ID.
func (r *ScanRepository) GetScanRecordsByDocument(ctx context.Context, documentID core.ID) ([]core.ID, error) {
	return r.scanIndex(makePartialDocumentKey(documentID))
}

// ListScanRecords retrieves up to limit records in ascending ID order.
func (r *ScanRepository) ListScanRecords(ctx context.Context, limit int) ([]*core.ScanRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ScanRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(scanRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.ScanRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalScanRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)

	return results, err
}

// scanIndex collects the record IDs of every index key under prefix.
func (r *ScanRepository) scanIndex(prefix []byte) ([]core.ID, error) {
	var recordIDs []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Prefix plus an 8-byte record ID
			if len(key) != len(prefix)+8 {
				continue
			}
			recordIDs = append(recordIDs, recordIDFromIndexKey(key))
		}
		return nil
	}, false)
	return recordIDs, err
}

// updateIndices writes the phrase and document index entries for record.
func (r *ScanRepository) updateIndices(tx *badger.Txn, record *core.ScanRecord) error {
	for _, phrase := range record.HitPhrases() {
		if err := tx.Set(makePhraseKey(phrase, record.Id), nil); err != nil {
			return err
		}
	}
	return tx.Set(makeDocumentKey(record.DocumentId, record.Id), nil)
}

// deleteIndices removes the phrase and document index entries for record.
func (r *ScanRepository) deleteIndices(tx *badger.Txn, record *core.ScanRecord) error {
	for _, phrase := range record.HitPhrases() {
		if err := tx.Delete(makePhraseKey(phrase, record.Id)); err != nil {
			return err
		}
	}
	return tx.Delete(makeDocumentKey(record.DocumentId, record.Id))
}

// readScanRecord reads a scan record from storage.
// Returns nil, nil if the record doesn't exist.
func (r *ScanRepository) readScanRecord(tx *badger.Txn, key []byte) (*core.ScanRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ScanRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalScanRecord(val)
		return unmarshalErr
	})
	return record, err
}
