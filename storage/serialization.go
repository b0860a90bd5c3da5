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


package storage

import (
	"fmt"

	"github.com/poiesic/phrasef/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, idMUS.Size(id))
	idMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := idMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalScanRecord serializes a ScanRecord to bytes.
func MarshalScanRecord(record *core.ScanRecord) []byte {
	buf := make([]byte, scanRecordMUS.Size(*record))
	scanRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalScanRecord deserializes a ScanRecord from bytes.
func UnmarshalScanRecord(data []byte) (*core.ScanRecord, error) {
	record, n, err := scanRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: scan record: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &record, nil
}
