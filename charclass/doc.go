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


// Package charclass classifies strings by the character-class families used
// in Japanese and mixed-script text.
//
// Each IsXxx predicate reports whether a string is non-empty and consists
// entirely of runes from one class, the same as an anchored ^[class]+$ match:
//   - Half-width numeric: 0-9
//   - Half-width alphabet: a-z, A-Z, '-' and '_'
//   - Half-width alphanumeric: the union of the two above
//   - Full-width katakana: ァ-ヶ and the prolonged sound mark ー
//   - Full-width hiragana: ぁ-ん and the prolonged sound mark ー
//   - Full-width numeric: ０-９
//   - Full-width kanji: 一-龥
//
// Hyphen and underscore belong to the half-width alphabet class, so "MAX-280"
// is a single half-width token as far as these predicates are concerned.
//
// The rune-level forms (HalfwidthNumericRune and friends) are exported for
// callers that classify one character at a time.
package charclass
