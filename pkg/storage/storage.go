// Package storage provides the string key-value persistence collaborators
// the journal store writes through. Backends must tolerate absent keys
// (ErrKeyNotFound) and must never interpret the values they carry.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value exists for a key.
var ErrKeyNotFound = errors.New("storage: key not found")

// The three logical keys the journal store persists.
const (
	KeyEntries     = "daysay.journal.entries"
	KeyActiveEntry = "daysay.journal.active_entry"
	KeyVersion     = "daysay.journal.version"
)

// Persistence is a flat string key-value store.
type Persistence interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
