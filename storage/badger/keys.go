package badger

import (
	"encoding/binary"

	"github.com/poiesic/phrasef/core"
)

// Key prefixes for different data types
const (
	scanRecordPrefix       = "scanrec:"
	scanRecordPhrasePrefix = "scanphr:"
	scanRecordDocPrefix    = "scandoc:"
	scanRecordIDSeq        = "scanrecseq"
)

// appendID appends id in BigEndian order so lexicographic sort matches numeric order.
func appendID(buf []byte, id core.ID) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(id))
}

// makeScanRecordKey generates a key for a scan record by ID.
// Format: prefix + id
func makeScanRecordKey(id core.ID) []byte {
	buf := make([]byte, 0, len(scanRecordPrefix)+8)
	buf = append(buf, scanRecordPrefix...)
	return appendID(buf, id)
}

// makePartialPhraseKey generates the key prefix shared by every index entry
// of one phrase. The phrase is length-prefixed so that no phrase is a prefix
// of another phrase's entries.
// Format: prefix + len(phrase) + phrase
func makePartialPhraseKey(phrase string) []byte {
	buf := make([]byte, 0, len(scanRecordPhrasePrefix)+4+len(phrase)+8)
	buf = append(buf, scanRecordPhrasePrefix...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(phrase)))
	return append(buf, phrase...)
}

// makePhraseKey generates a composite key for the phrase index.
// Format: prefix + len(phrase) + phrase + recordID
func makePhraseKey(phrase string, recordID core.ID) []byte {
	return appendID(makePartialPhraseKey(phrase), recordID)
}

// makePartialDocumentKey generates a partial key for document queries.
// Format: prefix + documentID
func makePartialDocumentKey(documentID core.ID) []byte {
	buf := make([]byte, 0, len(scanRecordDocPrefix)+16)
	buf = append(buf, scanRecordDocPrefix...)
	return appendID(buf, documentID)
}

// makeDocumentKey generates a composite key for the document index.
// Format: prefix + documentID + recordID
func makeDocumentKey(documentID, recordID core.ID) []byte {
	return appendID(makePartialDocumentKey(documentID), recordID)
}

// recordIDFromIndexKey extracts the trailing record ID of an index key.
func recordIDFromIndexKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
