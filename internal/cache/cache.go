// Package cache provides a small read-side cache port with a Redis-backed
// implementation. Values are JSON-marshalled; a cache miss is not an error.
package cache

import "time"

// Cache is the port services depend on.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Noop satisfies Cache without storing anything. Used when Redis is not
// configured.
type Noop struct{}

func (Noop) Get(string, any) (bool, error)        { return false, nil }
func (Noop) Set(string, any, time.Duration) error { return nil }
func (Noop) Invalidate(string) error              { return nil }
