// Package kv holds the key-value media the order queue is persisted to.
// Every backend stores opaque string values under string keys; callers own
// serialization.
package kv

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrClosed     = errors.New("kv: store is closed")
	ErrInvalidKey = errors.New("kv: invalid key")
)

// Store is a named-slot medium. Get reports ok=false when the key was never set.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
