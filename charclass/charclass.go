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


package charclass

const prolongedSoundMark = 'ー' // U+30FC

// HalfwidthNumericRune reports whether r is an ASCII digit.
func HalfwidthNumericRune(r rune) bool {
	return r >= '0' && r <= '9'
}

// HalfwidthAlphabetRune reports whether r is an ASCII letter, '-' or '_'.
func HalfwidthAlphabetRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' || r == '_'
}

// HalfwidthAlphaNumericRune reports whether r is an ASCII digit, letter, '-' or '_'.
func HalfwidthAlphaNumericRune(r rune) bool {
	return HalfwidthNumericRune(r) || HalfwidthAlphabetRune(r)
}

// FullwidthKatakanaRune reports whether r is in ァ-ヶ or is the prolonged sound mark.
func FullwidthKatakanaRune(r rune) bool {
	return (r >= 'ァ' && r <= 'ヶ') || r == prolongedSoundMark
}

// FullwidthHiraganaRune reports whether r is in ぁ-ん or is the prolonged sound mark.
func FullwidthHiraganaRune(r rune) bool {
	return (r >= 'ぁ' && r <= 'ん') || r == prolongedSoundMark
}

// FullwidthNumericRune reports whether r is a full-width digit (U+FF10-U+FF19).
func FullwidthNumericRune(r rune) bool {
	return r >= '０' && r <= '９'
}

// FullwidthKanjiRune reports whether r is in the CJK range 一-龥 (U+4E00-U+9FA5).
func FullwidthKanjiRune(r rune) bool {
	return r >= '一' && r <= '龥'
}

// FullwidthRune reports whether r is treated as a full-width character.
// ASCII up to '~', the yen sign, the overline and half-width katakana are not.
func FullwidthRune(r rune) bool {
	switch {
	case r <= '~':
		return false
	case r == '¥', r == '‾':
		return false
	case r >= '｡' && r <= 'ﾟ':
		return false
	}
	return true
}

// only reports whether s is non-empty and every rune satisfies pred.
func only(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// IsHalfwidthNumeric reports whether s consists only of ASCII digits.
func IsHalfwidthNumeric(s string) bool {
	return only(s, HalfwidthNumericRune)
}

// IsHalfwidthAlphabet reports whether s consists only of ASCII letters, '-' and '_'.
func IsHalfwidthAlphabet(s string) bool {
	return only(s, HalfwidthAlphabetRune)
}

// IsHalfwidthAlphaNumeric reports whether s consists only of ASCII digits,
// letters, '-' and '_'.
func IsHalfwidthAlphaNumeric(s string) bool {
	return only(s, HalfwidthAlphaNumericRune)
}

// IsFullwidthKatakana reports whether s consists only of full-width katakana.
func IsFullwidthKatakana(s string) bool {
	return only(s, FullwidthKatakanaRune)
}

// IsFullwidthHiragana reports whether s consists only of full-width hiragana.
func IsFullwidthHiragana(s string) bool {
	return only(s, FullwidthHiraganaRune)
}

// IsFullwidthNumeric reports whether s consists only of full-width digits.
func IsFullwidthNumeric(s string) bool {
	return only(s, FullwidthNumericRune)
}

// IsFullwidthKanji reports whether s consists only of kanji.
func IsFullwidthKanji(s string) bool {
	return only(s, FullwidthKanjiRune)
}

// IsFullwidthOnly reports whether every rune of s is full-width.
// Unlike the class predicates it is true for the empty string.
func IsFullwidthOnly(s string) bool {
	for _, r := range s {
		if !FullwidthRune(r) {
			return false
		}
	}
	return true
}
