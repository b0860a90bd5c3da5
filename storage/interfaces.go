package storage

import (
	"context"

	"github.com/poiesic/phrasef/core"
)

// ScanRepository provides operations for managing stored scan records.
// Implementations must be thread-safe and support concurrent access.
type ScanRepository interface {
	// AddScanRecords adds one or more scan records to storage.
	// Generates new IDs from sequence for every record.
	// Sets ScannedAt if not already set.
	// Returns the records with generated IDs and timestamps populated.
	AddScanRecords(ctx context.Context, records ...*core.ScanRecord) ([]*core.ScanRecord, error)

	// DeleteScanRecords removes scan records by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteScanRecords(ctx context.Context, ids ...core.ID) error

	// GetScanRecord retrieves a single scan record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetScanRecord(ctx context.Context, id core.ID) (*core.ScanRecord, error)

	// GetScanRecords retrieves multiple scan records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetScanRecords(ctx context.Context, ids ...core.ID) ([]*core.ScanRecord, error)

	// GetScanRecordsByPhrase retrieves IDs of scan records in which phrase had
	// at least one independent hit, in ascending ID order.
	GetScanRecordsByPhrase(ctx context.Context, phrase string) ([]core.ID, error)

	// GetScanRecordsByDocument retrieves IDs of scan records for a document
	// content ID, in ascending ID order.
	GetScanRecordsByDocument(ctx context.Context, documentID core.ID) ([]core.ID, error)

	// ListScanRecords retrieves up to limit records in ascending ID order.
	// A limit <= 0 returns ErrInvalidQuery.
	ListScanRecords(ctx context.Context, limit int) ([]*core.ScanRecord, error)

	// Close releases resources held by the repository.
	Close() error
}
