package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Revalidator clears the page caches after content changes. Notify never
// blocks the writer and a failed invalidation is only logged, so a write
// that already succeeded is never failed by it.
type Revalidator struct {
	pages     Pages
	events    chan struct{}
	timeout   time.Duration
	onFailure func(error)

	generation atomic.Uint64
}

// RevalidatorOption configures a Revalidator.
type RevalidatorOption func(*Revalidator)

// WithFailureHook registers fn to be called for every failed invalidation.
func WithFailureHook(fn func(error)) RevalidatorOption {
	return func(r *Revalidator) { r.onFailure = fn }
}

// WithTimeout bounds a single invalidation pass.
func WithTimeout(d time.Duration) RevalidatorOption {
	return func(r *Revalidator) { r.timeout = d }
}

// NewRevalidator returns a Revalidator clearing pages. Call Run to start
// processing events.
func NewRevalidator(pages Pages, opts ...RevalidatorOption) *Revalidator {
	r := &Revalidator{
		pages:   pages,
		events:  make(chan struct{}, 1),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notify records that the content changed. If an invalidation is already
// pending the event is coalesced into it.
func (r *Revalidator) Notify() {
	r.generation.Add(1)
	select {
	case r.events <- struct{}{}:
	default:
		slog.Debug("revalidation already pending")
	}
}

// Generation counts Notify calls. A page rendered while the generation
// moved may show the old content and should not be cached.
func (r *Revalidator) Generation() uint64 {
	return r.generation.Load()
}

// Run processes events until ctx is cancelled.
func (r *Revalidator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.events:
			r.invalidate(ctx)
		}
	}
}

func (r *Revalidator) invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.pages.InvalidateAll(ctx); err != nil {
		slog.Warn("page revalidation failed", "error", err)
		if r.onFailure != nil {
			r.onFailure(err)
		}
		return
	}
	slog.Debug("pages revalidated")
}
