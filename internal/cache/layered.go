package cache

import (
	"context"
	"errors"
	"fmt"
)

// Layered checks each cache in order. A hit in a lower layer is copied
// into the layers above it.
type Layered struct {
	layers []Pages
}

// NewLayered returns a cache consulting layers in order, fastest first.
// Nil layers are skipped.
func NewLayered(layers ...Pages) *Layered {
	l := &Layered{}
	for _, p := range layers {
		if p != nil {
			l.layers = append(l.layers, p)
		}
	}
	return l
}

func (l *Layered) Get(ctx context.Context, key string) ([]byte, bool) {
	for i, p := range l.layers {
		if val, ok := p.Get(ctx, key); ok {
			for _, upper := range l.layers[:i] {
				upper.Set(ctx, key, val)
			}
			return val, true
		}
	}
	return nil, false
}

func (l *Layered) Set(ctx context.Context, key string, html []byte) {
	for _, p := range l.layers {
		p.Set(ctx, key, html)
	}
}

// InvalidateAll clears every layer, continuing past failures.
func (l *Layered) InvalidateAll(ctx context.Context) error {
	var errs []error
	for _, p := range l.layers {
		if err := p.InvalidateAll(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (l *Layered) Name() string { return "layered" }
