// Package storage is the client's persistent key/value store, the terminal
// counterpart of a browser's localStorage. Values are opaque strings; the
// session package stores JSON documents under the "tokens" and "user" keys.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage closed")

// Storage is a string key/value store.
//
// Get reports ok=false (and a nil error) when the key is absent.
// SetMany writes all pairs or none. Remove ignores missing keys.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}
