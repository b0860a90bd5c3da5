package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/phrasef/core"
)

// serializer is the subset of the mus serializer contract used here.
type serializer[T any] interface {
	Marshal(v T, bs []byte) (n int)
	Unmarshal(bs []byte) (v T, n int, err error)
	Size(v T) (size int)
}

// read unmarshals one field from bs[*n:] into dst and advances *n.
func read[T any](ser serializer[T], dst *T, bs []byte, n *int) error {
	v, m, err := ser.Unmarshal(bs[*n:])
	*n += m
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

var (
	idMUS           serializer[core.ID]             = idSer{}
	timeMUS         serializer[time.Time]           = timeSer{}
	modeMUS         serializer[core.AnalysisMode]   = modeSer{}
	braceMUS        serializer[core.Brace]          = braceSer{}
	positionMUS     serializer[core.Position]       = positionSer{}
	stringsMUS      serializer[[]string]            = sliceSer[string]{elem: ord.String}
	positionsMUS    serializer[[]core.Position]     = sliceSer[core.Position]{elem: positionMUS}
	phraseResultMUS serializer[core.PhraseResult]   = phraseResultSer{}
	resultsMUS      serializer[[]core.PhraseResult] = sliceSer[core.PhraseResult]{elem: phraseResultMUS}
	scanRecordMUS   serializer[core.ScanRecord]     = scanRecordSer{}
)

type idSer struct{}

func (idSer) Marshal(v core.ID, bs []byte) int { return varint.Uint64.Marshal(uint64(v), bs) }
func (idSer) Size(v core.ID) int { return varint.Uint64.Size(uint64(v)) }

func (idSer) Unmarshal(bs []byte) (core.ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

// timeSer stores timestamps as Unix microseconds.
type timeSer struct{}

func (timeSer) Marshal(v time.Time, bs []byte) int { return varint.Int64.Marshal(v.UnixMicro(), bs) }
func (timeSer) Size(v time.Time) int { return varint.Int64.Size(v.UnixMicro()) }

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

type modeSer struct{}

func (modeSer) Marshal(v core.AnalysisMode, bs []byte) int { return varint.Int.Marshal(int(v), bs) }
func (modeSer) Size(v core.AnalysisMode) int { return varint.Int.Size(int(v)) }

func (modeSer) Unmarshal(bs []byte) (core.AnalysisMode, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return core.AnalysisMode(v), n, err
}

// sliceSer encodes a length prefix followed by each element.
type sliceSer[T any] struct {
	elem serializer[T]
}

func (s sliceSer[T]) Marshal(v []T, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += s.elem.Marshal(e, bs[n:])
	}
	return n
}

func (s sliceSer[T]) Size(v []T) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += s.elem.Size(e)
	}
	return size
}

func (s sliceSer[T]) Unmarshal(bs []byte) (v []T, n int, err error) {
	var length int
	if err = read(varint.Int, &length, bs, &n); err != nil {
		return nil, n, err
	}
	// Every element takes at least one byte.
	if length < 0 || length > len(bs)-n {
		return nil, n, fmt.Errorf("%w: slice length %d", ErrTruncatedData, length)
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]T, length)
	for i := range v {
		if err = read(s.elem, &v[i], bs, &n); err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

type braceSer struct{}

func (braceSer) Marshal(v core.Brace, bs []byte) (n int) {
	n = ord.String.Marshal(v.Prefix, bs)
	n += ord.String.Marshal(v.Suffix, bs[n:])
	return n
}

func (braceSer) Size(v core.Brace) int {
	return ord.String.Size(v.Prefix) + ord.String.Size(v.Suffix)
}

func (braceSer) Unmarshal(bs []byte) (v core.Brace, n int, err error) {
	if err = read(ord.String, &v.Prefix, bs, &n); err != nil {
		return
	}
	err = read(ord.String, &v.Suffix, bs, &n)
	return
}

type positionSer struct{}

func (positionSer) Marshal(v core.Position, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Start, bs)
	n += varint.Int.Marshal(v.End, bs[n:])
	n += varint.Int.Marshal(v.ByteStart, bs[n:])
	n += varint.Int.Marshal(v.ByteEnd, bs[n:])
	return n
}

func (positionSer) Size(v core.Position) int {
	return varint.Int.Size(v.Start) + varint.Int.Size(v.End) +
		varint.Int.Size(v.ByteStart) + varint.Int.Size(v.ByteEnd)
}

func (positionSer) Unmarshal(bs []byte) (v core.Position, n int, err error) {
	for _, dst := range []*int{&v.Start, &v.End, &v.ByteStart, &v.ByteEnd} {
		if err = read(varint.Int, dst, bs, &n); err != nil {
			return
		}
	}
	return
}

type phraseResultSer struct{}

func (phraseResultSer) Marshal(v core.PhraseResult, bs []byte) (n int) {
	n = ord.String.Marshal(v.Phrase, bs)
	n += modeMUS.Marshal(v.Mode, bs[n:])
	n += ord.Bool.Marshal(v.IsHit, bs[n:])
	n += varint.Int.Marshal(v.NumOfHits, bs[n:])
	n += ord.String.Marshal(v.Hint, bs[n:])
	n += positionsMUS.Marshal(v.Positions, bs[n:])
	return n
}

func (phraseResultSer) Size(v core.PhraseResult) int {
	return ord.String.Size(v.Phrase) +
		modeMUS.Size(v.Mode) +
		ord.Bool.Size(v.IsHit) +
		varint.Int.Size(v.NumOfHits) +
		ord.String.Size(v.Hint) +
		positionsMUS.Size(v.Positions)
}

func (phraseResultSer) Unmarshal(bs []byte) (v core.PhraseResult, n int, err error) {
	if err = read(ord.String, &v.Phrase, bs, &n); err != nil {
		return
	}
	if err = read(modeMUS, &v.Mode, bs, &n); err != nil {
		return
	}
	if err = read(ord.Bool, &v.IsHit, bs, &n); err != nil {
		return
	}
	if err = read(varint.Int, &v.NumOfHits, bs, &n); err != nil {
		return
	}
	if err = read(ord.String, &v.Hint, bs, &n); err != nil {
		return
	}
	err = read(positionsMUS, &v.Positions, bs, &n)
	return
}

type scanRecordSer struct{}

func (scanRecordSer) Marshal(v core.ScanRecord, bs []byte) (n int) {
	n = idMUS.Marshal(v.Id, bs)
	n += idMUS.Marshal(v.DocumentId, bs[n:])
	n += ord.String.Marshal(v.DocumentName, bs[n:])
	n += ord.String.Marshal(v.Text, bs[n:])
	n += stringsMUS.Marshal(v.Phrases, bs[n:])
	n += ord.Bool.Marshal(v.IsHit, bs[n:])
	n += varint.Int.Marshal(v.NumOfHits, bs[n:])
	n += ord.String.Marshal(v.Hint, bs[n:])
	n += resultsMUS.Marshal(v.Results, bs[n:])
	n += braceMUS.Marshal(v.Brace, bs[n:])
	n += timeMUS.Marshal(v.ScannedAt, bs[n:])
	return n
}

func (scanRecordSer) Size(v core.ScanRecord) int {
	return idMUS.Size(v.Id) +
		idMUS.Size(v.DocumentId) +
		ord.String.Size(v.DocumentName) +
		ord.String.Size(v.Text) +
		stringsMUS.Size(v.Phrases) +
		ord.Bool.Size(v.IsHit) +
		varint.Int.Size(v.NumOfHits) +
		ord.String.Size(v.Hint) +
		resultsMUS.Size(v.Results) +
		braceMUS.Size(v.Brace) +
		timeMUS.Size(v.ScannedAt)
}

func (scanRecordSer) Unmarshal(bs []byte) (v core.ScanRecord, n int, err error) {
	if err = read(idMUS, &v.Id, bs, &n); err != nil {
		return
	}
	if err = read(idMUS, &v.DocumentId, bs, &n); err != nil {
		return
	}
	if err = read(ord.String, &v.DocumentName, bs, &n); err != nil {
		return
	}
	if err = read(ord.String, &v.Text, bs, &n); err != nil {
		return
	}
	if err = read(stringsMUS, &v.Phrases, bs, &n); err != nil {
		return
	}
	if err = read(ord.Bool, &v.IsHit, bs, &n); err != nil {
		return
	}
	if err = read(varint.Int, &v.NumOfHits, bs, &n); err != nil {
		return
	}
	if err = read(ord.String, &v.Hint, bs, &n); err != nil {
		return
	}
	if err = read(resultsMUS, &v.Results, bs, &n); err != nil {
		return
	}
	if err = read(braceMUS, &v.Brace, bs, &n); err != nil {
		return
	}
	err = read(timeMUS, &v.ScannedAt, bs, &n)
	return
}
