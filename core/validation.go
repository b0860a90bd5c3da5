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


package core

import (
	"fmt"
	"unicode/utf8"
)

// ValidateText checks that text can be scanned.
//
// Validation rules:
//   - Text must be valid UTF-8 (offsets are counted in runes)
//
// The empty string is a valid text.
func ValidateText(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: %w", ErrInvalidText, ErrInvalidUTF8)
	}
	return nil
}

// ValidatePhrase checks that phrase can be searched for.
//
// Validation rules:
//   - Phrase must not be empty (a zero-length phrase never advances a scan)
//   - Phrase must be valid UTF-8
func ValidatePhrase(phrase string) error {
	if phrase == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPhrase, ErrEmptyPhrase)
	}
	if !utf8.ValidString(phrase) {
		return fmt.Errorf("%w: %w", ErrInvalidPhrase, ErrInvalidUTF8)
	}
	return nil
}

// ValidatePhrases validates every phrase and reports the index of the first failure.
func ValidatePhrases(phrases []string) error {
	for i, phrase := range phrases {
		if err := ValidatePhrase(phrase); err != nil {
			return fmt.Errorf("phrase %d: %w", i, err)
		}
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Text must pass ValidateText
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentName)
	}
	if err := ValidateText(doc.Text); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// ValidateScanRecord validates a ScanRecord before it is stored.
//
// Validation rules:
//   - DocumentName must not be empty
//   - Every phrase must pass ValidatePhrase
//   - Every result must be internally consistent
//   - IsHit must agree with NumOfHits
//
// NOT validated (populated by storage):
//   - ID (0 is valid until a sequence is assigned)
//   - ScannedAt
func ValidateScanRecord(record *ScanRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidScanRecord)
	}
	if record.DocumentName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidScanRecord, ErrEmptyDocumentName)
	}
	if err := ValidatePhrases(record.Phrases); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScanRecord, err)
	}
	for i := range record.Results {
		if err := record.Results[i].Check(); err != nil {
			return fmt.Errorf("%w: result %d: %w", ErrInvalidScanRecord, i, err)
		}
	}
	if record.IsHit != (record.NumOfHits > 0) {
		return fmt.Errorf("%w: %w", ErrInvalidScanRecord, ErrInconsistentResult)
	}
	return nil
}
