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


// Package finder locates lexically independent occurrences of phrases in text.
//
// An occurrence counts as a hit only when the characters immediately before
// and after it do not continue the phrase's own character class. Searching
// for "DENT" in "週刊PRESIDENTの記事ではDENTに" finds one hit: the DENT inside
// PRESIDENT is preceded by a half-width letter, the second is flanked by
// Japanese text.
//
// The class of a phrase is its analysis mode, decided by DetectMode from the
// predicates in package charclass. A phrase that fits no class (mixed scripts,
// punctuation, spaces) is ModeUnknown and never produces a hit.
//
// Every scan also renders a hint: the scanned text with each independent hit
// wrapped in the finder's brace ("[" and "]" by default). ScanPhrases builds a
// single hint carrying the brackets of every phrase while counting each phrase
// against the untouched text.
//
// A Finder holds mutable brace configuration and no locks. It may be shared by
// goroutines that only scan; changing its brace while scans run is a data race.
// Use one Finder per brace configuration.
package finder
