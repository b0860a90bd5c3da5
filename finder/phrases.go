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
	"github.com/poiesic/phrasef/core"
)

// ScanPhrases scans text for every phrase in order.
//
// Each phrase is counted against the original text, so brackets inserted for
// earlier phrases never influence later hit counts. Separately, the hint is
// threaded through the phrases: every phrase is rescanned against the hint
// left by its predecessor, and the last hint becomes the set's hint.
//
// A phrase given twice replaces its earlier entry in the set, but both scans
// count toward the totals.
func (f *Finder) ScanPhrases(text string, phrases []string) (*core.ResultSet, error) {
	if err := core.ValidateText(text); err != nil {
		return nil, err
	}
	if err := core.ValidatePhrases(phrases); err != nil {
		return nil, err
	}

	brace := f.brace
	hintOnly := &noopMonitor{}

	rs := core.NewResultSet(text)
	annotated := text
	for _, phrase := range phrases {
		rs.Add(f.scan(text, phrase, brace, f.monitor))
		annotated = f.scan(annotated, phrase, brace, hintOnly).Hint
	}
	rs.Hint = annotated

	f.logger.Debug("scanned phrases", "phrases", len(phrases), "hits", rs.NumOfHits)
	return rs, nil
}
