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


package finder

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/phrasef/core"
)

// ScanPhrase finds the independent occurrences of phrase in text.
// The phrase must be non-empty; both strings must be valid UTF-8.
func (f *Finder) ScanPhrase(text, phrase string) (*core.PhraseResult, error) {
	if err := core.ValidateText(text); err != nil {
		return nil, err
	}
	if err := core.ValidatePhrase(phrase); err != nil {
		return nil, err
	}

	result := f.scan(text, phrase, f.brace, f.monitor)
	f.logger.Debug("scanned phrase", "phrase", phrase, "mode", result.Mode, "hits", result.NumOfHits)
	return result, nil
}

// scan runs one left-to-right pass of phrase over text. Callers validate input.
func (f *Finder) scan(text, phrase string, brace core.Brace, monitor ScanMonitor) *core.PhraseResult {
	monitor.Start(text, phrase)

	mode := DetectMode(phrase)
	monitor.ModeDetected(phrase, mode)

	result := &core.PhraseResult{
		Phrase:    phrase,
		Mode:      mode,
		Positions: make([]core.Position, 0),
	}
	phraseLen := utf8.RuneCountInString(phrase)

	var hint strings.Builder
	hint.Grow(len(text))

	cursor := 0     // byte offset
	cursorRune := 0 // rune offset of cursor
	for {
		i := strings.Index(text[cursor:], phrase)
		if i < 0 {
			hint.WriteString(text[cursor:])
			break
		}

		byteStart := cursor + i
		byteEnd := byteStart + len(phrase)
		pos := core.Position{
			Start:     cursorRune + utf8.RuneCountInString(text[cursor:byteStart]),
			ByteStart: byteStart,
			ByteEnd:   byteEnd,
		}
		pos.End = pos.Start + phraseLen

		hint.WriteString(text[cursor:byteStart])

		prev, hasPrev := f.previousRune(text, pos)
		next, hasNext := nextRune(text, pos)
		independent := isIndependent(prev, hasPrev, mode) && isIndependent(next, hasNext, mode)
		monitor.Occurrence(phrase, pos, independent)

		if independent {
			result.Positions = append(result.Positions, pos)
			hint.WriteString(brace.Wrap(phrase))
		} else {
			hint.WriteString(phrase)
		}

		cursor = byteEnd
		cursorRune = pos.End
	}

	result.NumOfHits = len(result.Positions)
	result.IsHit = result.NumOfHits > 0
	result.Hint = hint.String()

	monitor.Finish(result)
	return result
}

// previousRune returns the rune just before pos. Outside strict mode an
// occurrence at rune index 1 is treated like one at index 0 and has no left
// neighbor.
func (f *Finder) previousRune(text string, pos core.Position) (rune, bool) {
	limit := 1
	if f.strictLeading {
		limit = 0
	}
	if pos.Start <= limit {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos.ByteStart])
	return r, true
}

// nextRune returns the rune just after pos, if any.
func nextRune(text string, pos core.Position) (rune, bool) {
	if pos.ByteEnd >= len(text) {
		return utf8.RuneError, false
	}
	r, _ := utf8.DecodeRuneInString(text[pos.ByteEnd:])
	return r, true
}
