// Package kv stores small session documents such as the cart and the applied
// coupon.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix scopes every key of store under prefix
func WithPrefix(store Store, prefix string) Store {
	return &prefixed{store: store, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}
