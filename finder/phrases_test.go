package finder

import (
	"testing"

	"github.com/poiesic/phrasef/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bitcoinText = "これから仮想通貨として期待できるのはビットコインよりもむしろビットコインキャッシュであろう。ただ、基盤としてビットコインが消えることは無い。"

func TestScanPhrases(t *testing.T) {
	f := newFinder(t)
	phrases := []string{"ビットコイン", "ビットコインキャッシュ"}

	rs, err := f.ScanPhrases(bitcoinText, phrases)
	require.NoError(t, err)
	require.NoError(t, rs.Check())

	assert.True(t, rs.IsHit)
	assert.Equal(t, 3, rs.NumOfHits)
	assert.Equal(t, "これから仮想通貨として期待できるのは[ビットコイン]よりもむしろ[ビットコインキャッシュ]であろう。ただ、基盤として[ビットコイン]が消えることは無い。", rs.Hint)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, phrases, rs.Phrases())

	short, ok := rs.Result("ビットコイン")
	require.True(t, ok)
	assert.Equal(t, 2, short.NumOfHits)
	assert.Equal(t, core.ModeFullwidthKatakana, short.Mode)

	long, ok := rs.Result("ビットコインキャッシュ")
	require.True(t, ok)
	assert.Equal(t, 1, long.NumOfHits)
}

func TestScanPhrases_CountsAgainstOriginalText(t *testing.T) {
	f := newFinder(t)

	// The second phrase matches inside the brackets inserted for the first one
	// only in the hint pass; its count comes from the clean text.
	rs, err := f.ScanPhrases("記事はDENTです", []string{"DENT", "[DENT]"})
	require.NoError(t, err)

	first, _ := rs.Result("DENT")
	assert.Equal(t, 1, first.NumOfHits)
	second, _ := rs.Result("[DENT]")
	assert.Zero(t, second.NumOfHits)
	assert.Equal(t, 1, rs.NumOfHits)
}

func TestScanPhrases_CustomBrace(t *testing.T) {
	f := newFinder(t)
	phrases := []string{"ビットコイン", "ビットコインキャッシュ"}

	f.SetHintBrace("【", "】")
	rs, err := f.ScanPhrases(bitcoinText, phrases)
	require.NoError(t, err)
	assert.Equal(t, "これから仮想通貨として期待できるのは【ビットコイン】よりもむしろ【ビットコインキャッシュ】であろう。ただ、基盤として【ビットコイン】が消えることは無い。", rs.Hint)

	f.ResetHintBrace()
	rs, err = f.ScanPhrases(bitcoinText, phrases)
	require.NoError(t, err)
	assert.Equal(t, "これから仮想通貨として期待できるのは[ビットコイン]よりもむしろ[ビットコインキャッシュ]であろう。ただ、基盤として[ビットコイン]が消えることは無い。", rs.Hint)
}

func TestScanPhrases_DuplicatePhrase(t *testing.T) {
	f := newFinder(t)
	rs, err := f.ScanPhrases("DENTとDENT", []string{"DENT", "DENT"})
	require.NoError(t, err)

	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, 4, rs.NumOfHits)
	assert.True(t, rs.IsHit)
	require.NoError(t, rs.Check())
}

func TestScanPhrases_Empty(t *testing.T) {
	f := newFinder(t)

	t.Run("no phrases", func(t *testing.T) {
		rs, err := f.ScanPhrases("DENT", nil)
		require.NoError(t, err)
		assert.False(t, rs.IsHit)
		assert.Zero(t, rs.NumOfHits)
		assert.Zero(t, rs.Len())
		assert.Equal(t, "DENT", rs.Hint)
	})

	t.Run("no hits", func(t *testing.T) {
		rs, err := f.ScanPhrases("PRESIDENT", []string{"DENT", "PRES"})
		require.NoError(t, err)
		assert.False(t, rs.IsHit)
		assert.Equal(t, "PRESIDENT", rs.Hint)
		assert.Equal(t, 2, rs.Len())
	})
}

func TestScanPhrases_InvalidPhrase(t *testing.T) {
	f := newFinder(t)
	_, err := f.ScanPhrases("text", []string{"a", ""})
	assert.ErrorIs(t, err, core.ErrEmptyPhrase)
}

func TestScanPhrases_MonitorSeesAuthoritativePassOnly(t *testing.T) {
	monitor := &recordingMonitor{}
	f := newFinder(t, WithMonitor(monitor))

	_, err := f.ScanPhrases(bitcoinText, []string{"ビットコイン", "ビットコインキャッシュ"})
	require.NoError(t, err)
	assert.Equal(t, 2, monitor.finished)
}
