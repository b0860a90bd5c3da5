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

import "errors"

// Domain validation errors
var (
	// ErrEmptyPhrase indicates a search phrase is the empty string.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")

	// ErrInvalidPhrase indicates a search phrase failed validation.
	ErrInvalidPhrase = errors.New("invalid phrase")

	// ErrInvalidText indicates a text to be scanned failed validation.
	ErrInvalidText = errors.New("invalid text")

	// ErrInvalidUTF8 indicates a string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string is not valid UTF-8")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentName indicates the document Name field is empty.
	ErrEmptyDocumentName = errors.New("document name cannot be empty")

	// ErrInvalidScanRecord indicates a ScanRecord failed validation.
	ErrInvalidScanRecord = errors.New("invalid scan record")

	// ErrInconsistentResult indicates hit counts, hit flags and positions disagree.
	ErrInconsistentResult = errors.New("inconsistent result")

	// ErrUnknownAnalysisMode indicates a mode name could not be parsed.
	ErrUnknownAnalysisMode = errors.New("unknown analysis mode")
)
