package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/phrasef/core"
	"github.com/poiesic/phrasef/finder"
	"github.com/poiesic/phrasef/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScanRepo(t *testing.T) storage.ScanRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func scanDocument(t *testing.T, name, text string, phrases ...string) *core.ScanRecord {
	t.Helper()
	f, err := finder.New()
	require.NoError(t, err)
	rs, err := f.ScanPhrases(text, phrases)
	require.NoError(t, err)
	return core.NewScanRecord(core.Document{Name: name, Text: text}, phrases, rs, f.HintBrace())
}

func TestAddScanRecords(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	records := []*core.ScanRecord{
		scanDocument(t, "a.txt", "記事はDENTです。PRESIDENT", "DENT"),
		scanDocument(t, "b.txt", "MAX280ES", "280"),
	}

	added, err := repo.AddScanRecords(ctx, records...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.NotZero(t, added[0].Id)
	assert.NotZero(t, added[1].Id)
	assert.NotEqual(t, added[0].Id, added[1].Id)
	assert.False(t, added[0].ScannedAt.IsZero())
}

func TestAddScanRecords_KeepsScannedAt(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	at := time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
	record := scanDocument(t, "a.txt", "DENT", "DENT")
	record.ScannedAt = at

	_, err := repo.AddScanRecords(ctx, record)
	require.NoError(t, err)

	got, err := repo.GetScanRecord(ctx, record.Id)
	require.NoError(t, err)
	assert.True(t, at.Equal(got.ScannedAt))
}

func TestAddScanRecords_Invalid(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	record := scanDocument(t, "a.txt", "DENT", "DENT")
	record.DocumentName = ""

	_, err := repo.AddScanRecords(ctx, record)
	assert.ErrorIs(t, err, core.ErrInvalidScanRecord)
}

func TestAddScanRecords_CancelledContext(t *testing.T) {
	repo := setupScanRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.AddScanRecords(ctx, scanDocument(t, "a.txt", "DENT", "DENT"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetScanRecord(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	record := scanDocument(t, "news.txt", "記事はDENTです。PRESIDENT", "DENT", "記事")
	_, err := repo.AddScanRecords(ctx, record)
	require.NoError(t, err)

	got, err := repo.GetScanRecord(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record.Id, got.Id)
	assert.Equal(t, "news.txt", got.DocumentName)
	assert.Equal(t, record.Hint, got.Hint)
	assert.Equal(t, 2, got.NumOfHits)
	assert.Equal(t, []string{"DENT", "記事"}, got.Phrases)
	require.Len(t, got.Results, 2)
	assert.Equal(t, core.ModeHalfwidthAlphabet, got.Results[0].Mode)
	assert.Equal(t, record.Results[0].Positions, got.Results[0].Positions)
}

func TestGetScanRecord_NotFound(t *testing.T) {
	repo := setupScanRepo(t)

	_, err := repo.GetScanRecord(context.Background(), core.ID(999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetScanRecords(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	first := scanDocument(t, "a.txt", "DENT", "DENT")
	second := scanDocument(t, "b.txt", "PRESIDENT", "DENT")
	_, err := repo.AddScanRecords(ctx, first, second)
	require.NoError(t, err)

	got, err := repo.GetScanRecords(ctx, first.Id, core.ID(999), second.Id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.Id, got[0].Id)
	assert.Equal(t, second.Id, got[1].Id)
}

func TestGetScanRecordsByPhrase(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	hit := scanDocument(t, "a.txt", "記事はDENTです。", "DENT")
	embedded := scanDocument(t, "b.txt", "PRESIDENT", "DENT")
	other := scanDocument(t, "c.txt", "DENT と 日本", "DENT", "日本")
	_, err := repo.AddScanRecords(ctx, hit, embedded, other)
	require.NoError(t, err)

	ids, err := repo.GetScanRecordsByPhrase(ctx, "DENT")
	require.NoError(t, err)
	assert.Equal(t, []core.ID{hit.Id, other.Id}, ids)

	ids, err = repo.GetScanRecordsByPhrase(ctx, "日本")
	require.NoError(t, err)
	assert.Equal(t, []core.ID{other.Id}, ids)

	ids, err = repo.GetScanRecordsByPhrase(ctx, "DEN")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetScanRecordsByDocument(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	text := "記事はDENTです。"
	first := scanDocument(t, "a.txt", text, "DENT")
	second := scanDocument(t, "copy.txt", text, "記事")
	unrelated := scanDocument(t, "b.txt", "PRESIDENT", "DENT")
	_, err := repo.AddScanRecords(ctx, first, second, unrelated)
	require.NoError(t, err)

	ids, err := repo.GetScanRecordsByDocument(ctx, core.IDFromContent(text))
	require.NoError(t, err)
	assert.Equal(t, []core.ID{first.Id, second.Id}, ids)
}

func TestListScanRecords(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		_, err := repo.AddScanRecords(ctx, scanDocument(t, name, "DENT", "DENT"))
		require.NoError(t, err)
	}

	all, err := repo.ListScanRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a.txt", all[0].DocumentName)
	assert.Equal(t, "c.txt", all[2].DocumentName)
	assert.Less(t, all[0].Id, all[1].Id)

	limited, err := repo.ListScanRecords(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = repo.ListScanRecords(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestDeleteScanRecords(t *testing.T) {
	repo := setupScanRepo(t)
	ctx := context.Background()

	record := scanDocument(t, "a.txt", "DENT", "DENT")
	_, err := repo.AddScanRecords(ctx, record)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteScanRecords(ctx, record.Id))

	_, err = repo.GetScanRecord(ctx, record.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ids, err := repo.GetScanRecordsByPhrase(ctx, "DENT")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = repo.GetScanRecordsByDocument(ctx, record.DocumentId)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = repo.DeleteScanRecords(ctx, record.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestScanRepository_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewScanRepository(backend)
	require.NoError(t, err)

	record := scanDocument(t, "a.txt", "記事はDENTです。", "DENT")
	_, err = repo.AddScanRecords(ctx, record)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	repo, err = NewScanRepository(backend)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.GetScanRecord(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record.Hint, got.Hint)

	next := scanDocument(t, "b.txt", "DENT", "DENT")
	_, err = repo.AddScanRecords(ctx, next)
	require.NoError(t, err)
	assert.Greater(t, next.Id, record.Id)
}
