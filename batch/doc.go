// Package batch scans many documents for the same phrase list concurrently.
//
// The Scanner type distributes documents over a worker pool, scanning each
// one independently with a shared finder.Finder, and returns one
// core.ScanRecord per document in input order. When a repository is
// configured the records are persisted in a single call, retried with
// exponential backoff.
//
// Progress can be reported to any io.Writer, typically os.Stderr.
package batch
