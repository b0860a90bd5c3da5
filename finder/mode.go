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
	"github.com/poiesic/phrasef/charclass"
	"github.com/poiesic/phrasef/core"
)

// modeOrder is the fixed classification priority. Earlier entries win.
var modeOrder = []struct {
	mode core.AnalysisMode
	is   func(string) bool
}{
	{core.ModeHalfwidthNumeric, charclass.IsHalfwidthNumeric},
	{core.ModeHalfwidthAlphabet, charclass.IsHalfwidthAlphabet},
	{core.ModeHalfwidthAlphaNumeric, charclass.IsHalfwidthAlphaNumeric},
	{core.ModeFullwidthHiragana, charclass.IsFullwidthHiragana},
	{core.ModeFullwidthKatakana, charclass.IsFullwidthKatakana},
	{core.ModeFullwidthNumeric, charclass.IsFullwidthNumeric},
	{core.ModeFullwidthKanji, charclass.IsFullwidthKanji},
}

// DetectMode classifies phrase into the first analysis mode whose class it
// fully belongs to, or ModeUnknown.
func DetectMode(phrase string) core.AnalysisMode {
	for _, m := range modeOrder {
		if m.is(phrase) {
			return m.mode
		}
	}
	return core.ModeUnknown
}

// isIndependent reports whether the neighbor r leaves a phrase of the given
// mode standing on its own. A missing neighbor (ok == false) always does.
func isIndependent(r rune, ok bool, mode core.AnalysisMode) bool {
	if !ok {
		return true
	}
	switch mode {
	case core.ModeHalfwidthAlphabet:
		return !charclass.HalfwidthAlphabetRune(r)
	case core.ModeHalfwidthNumeric:
		// Digits glued to letters form one half-width word.
		return !charclass.HalfwidthNumericRune(r) && !charclass.HalfwidthAlphabetRune(r)
	case core.ModeHalfwidthAlphaNumeric:
		return !charclass.HalfwidthAlphaNumericRune(r)
	case core.ModeFullwidthKatakana:
		return !charclass.FullwidthKatakanaRune(r)
	case core.ModeFullwidthHiragana:
		return !charclass.FullwidthHiraganaRune(r)
	case core.ModeFullwidthNumeric:
		return !charclass.FullwidthNumericRune(r)
	case core.ModeFullwidthKanji:
		return !charclass.FullwidthKanjiRune(r)
	case core.ModeUnknown:
		return false
	default:
		return false
	}
}
