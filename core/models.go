package core

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// AnalysisMode is the character class a phrase was classified into.
// It decides which neighboring characters continue the phrase.
type AnalysisMode int

const (
	ModeUnknown AnalysisMode = iota
	ModeHalfwidthNumeric
	ModeHalfwidthAlphabet
	ModeHalfwidthAlphaNumeric
	ModeFullwidthKatakana
	ModeFullwidthHiragana
	ModeFullwidthNumeric
	ModeFullwidthKanji
)

var modeNames = [...]string{
	ModeUnknown:               "Unknown",
	ModeHalfwidthNumeric:      "HalfwidthNumeric",
	ModeHalfwidthAlphabet:     "HalfwidthAlphabet",
	ModeHalfwidthAlphaNumeric: "HalfwidthAlphaNumeric",
	ModeFullwidthKatakana:     "FullwidthKatakana",
	ModeFullwidthHiragana:     "FullwidthHiragana",
	ModeFullwidthNumeric:      "FullwidthNumeric",
	ModeFullwidthKanji:        "FullwidthKanji",
}

func (m AnalysisMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("AnalysisMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseAnalysisMode returns the mode whose String form is name.
func ParseAnalysisMode(name string) (AnalysisMode, error) {
	for i, n := range modeNames {
		if n == name {
			return AnalysisMode(i), nil
		}
	}
	return ModeUnknown, fmt.Errorf("%w: %q", ErrUnknownAnalysisMode, name)
}

func (m AnalysisMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *AnalysisMode) UnmarshalText(text []byte) error {
	mode, err := ParseAnalysisMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Position is one independent occurrence of a phrase.
// Start and End are half-open rune offsets into the scanned text;
// ByteStart and ByteEnd are the matching byte offsets.
type Position struct {
	Start     int `json:"start"`
	End       int `json:"end"`
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// Len returns the length of the occurrence in runes.
func (p Position) Len() int {
	return p.End - p.Start
}

// Brace is the pair of strings wrapped around independent hits in a hint.
type Brace struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

const (
	DefaultHintPrefix = "["
	DefaultHintSuffix = "]"
)

// DefaultBrace returns the "[" / "]" brace.
func DefaultBrace() Brace {
	return Brace{Prefix: DefaultHintPrefix, Suffix: DefaultHintSuffix}
}

// Wrap returns phrase surrounded by the brace.
func (b Brace) Wrap(phrase string) string {
	return b.Prefix + phrase + b.Suffix
}

// PhraseResult is the outcome of scanning one phrase against one text.
type PhraseResult struct {
	Phrase    string       `json:"phrase"`
	Mode      AnalysisMode `json:"mode"`
	IsHit     bool         `json:"isHit"`
	NumOfHits int          `json:"numOfHits"`
	Hint      string       `json:"hint"`
	Positions []Position   `json:"positions"`
}

// Check verifies that the hit flag, hit count and positions agree.
func (r *PhraseResult) Check() error {
	if r.NumOfHits != len(r.Positions) {
		return fmt.Errorf("%w: %d hits but %d positions", ErrInconsistentResult, r.NumOfHits, len(r.Positions))
	}
	if r.IsHit != (r.NumOfHits > 0) {
		return fmt.Errorf("%w: isHit=%t with %d hits", ErrInconsistentResult, r.IsHit, r.NumOfHits)
	}
	return nil
}

// ResultSet aggregates the results of several phrases scanned against one text.
// Results are kept in the order their phrase was first added.
type ResultSet struct {
	IsHit     bool
	NumOfHits int
	Hint      string

	phrases     []string
	results     map[string]*PhraseResult
	overwritten int
}

// NewResultSet creates an empty result set whose hint is text.
func NewResultSet(text string) *ResultSet {
	return &ResultSet{
		Hint:    text,
		results: make(map[string]*PhraseResult),
	}
}

// Add folds result into the totals and stores it under its phrase.
// A duplicate phrase replaces the stored result but keeps its original slot;
// its hits are still added to the totals.
func (rs *ResultSet) Add(result *PhraseResult) {
	if rs.results == nil {
		rs.results = make(map[string]*PhraseResult)
	}
	rs.NumOfHits += result.NumOfHits
	rs.IsHit = rs.IsHit || result.IsHit
	if _, ok := rs.results[result.Phrase]; ok {
		rs.overwritten++
	} else {
		rs.phrases = append(rs.phrases, result.Phrase)
	}
	rs.results[result.Phrase] = result
}

// Result returns the stored result for phrase.
func (rs *ResultSet) Result(phrase string) (*PhraseResult, bool) {
	r, ok := rs.results[phrase]
	return r, ok
}

// Phrases returns the distinct phrases in insertion order.
func (rs *ResultSet) Phrases() []string {
	out := make([]string, len(rs.phrases))
	copy(out, rs.phrases)
	return out
}

// Len returns the number of distinct phrases.
func (rs *ResultSet) Len() int {
	return len(rs.phrases)
}

// All iterates over phrase/result pairs in insertion order.
func (rs *ResultSet) All() iter.Seq2[string, *PhraseResult] {
	return func(yield func(string, *PhraseResult) bool) {
		for _, p := range rs.phrases {
			if !yield(p, rs.results[p]) {
				return
			}
		}
	}
}

// Check verifies every contained result and the aggregate totals.
// The sum of hits is only comparable when no phrase was added twice.
func (rs *ResultSet) Check() error {
	sum := 0
	anyHit := false
	for phrase, r := range rs.All() {
		if err := r.Check(); err != nil {
			return fmt.Errorf("phrase %q: %w", phrase, err)
		}
		sum += r.NumOfHits
		anyHit = anyHit || r.IsHit
	}
	if rs.IsHit != anyHit {
		return fmt.Errorf("%w: isHit=%t but members report %t", ErrInconsistentResult, rs.IsHit, anyHit)
	}
	if rs.overwritten == 0 && rs.NumOfHits != sum {
		return fmt.Errorf("%w: %d hits but members sum to %d", ErrInconsistentResult, rs.NumOfHits, sum)
	}
	return nil
}

type resultSetJSON struct {
	IsHit     bool            `json:"isHit"`
	NumOfHits int             `json:"numOfHits"`
	Hint      string          `json:"hint"`
	Results   []*PhraseResult `json:"results"`
}

func (rs *ResultSet) MarshalJSON() ([]byte, error) {
	out := resultSetJSON{
		IsHit:     rs.IsHit,
		NumOfHits: rs.NumOfHits,
		Hint:      rs.Hint,
		Results:   make([]*PhraseResult, 0, len(rs.phrases)),
	}
	for _, r := range rs.All() {
		out.Results = append(out.Results, r)
	}
	return json.Marshal(out)
}

// Document is a named text submitted for batch scanning.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ScanRecord is the stored outcome of scanning one document for a phrase list.
type ScanRecord struct {
	Id           ID             `json:"id"`
	DocumentId   ID             `json:"documentId"` // IDFromContent of the document text
	DocumentName string         `json:"documentName"`
	Text         string         `json:"text"`
	Phrases      []string       `json:"phrases"` // Phrases in the order they were scanned
	IsHit        bool           `json:"isHit"`
	NumOfHits    int            `json:"numOfHits"`
	Hint         string         `json:"hint"`
	Results      []PhraseResult `json:"results"` // One entry per distinct phrase, insertion order
	Brace        Brace          `json:"brace"`
	ScannedAt    time.Time      `json:"scannedAt"`
}

// NewScanRecord builds an unsaved record from a document and its result set.
func NewScanRecord(doc Document, phrases []string, rs *ResultSet, brace Brace) *ScanRecord {
	record := &ScanRecord{
		DocumentId:   IDFromContent(doc.Text),
		DocumentName: doc.Name,
		Text:         doc.Text,
		Phrases:      append([]string(nil), phrases...),
		IsHit:        rs.IsHit,
		NumOfHits:    rs.NumOfHits,
		Hint:         rs.Hint,
		Results:      make([]PhraseResult, 0, rs.Len()),
		Brace:        brace,
	}
	for _, r := range rs.All() {
		record.Results = append(record.Results, *r)
	}
	return record
}

// HitPhrases returns the phrases that had at least one independent hit.
func (r *ScanRecord) HitPhrases() []string {
	var out []string
	for _, pr := range r.Results {
		if pr.IsHit {
			out = append(out, pr.Phrase)
		}
	}
	return out
}
