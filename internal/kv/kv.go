// Package kv provides the durable key-value port that task and preference
// slots are persisted through. Values are text; a missing key is reported as
// ErrNotFound rather than an empty value.
package kv

import "errors"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed, string-valued persistent map. Implementations are
// not required to be safe for concurrent writers.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
