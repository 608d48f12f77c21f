// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"linkpage/internal/cache"
	"linkpage/internal/metrics"
	"linkpage/internal/models"
	"linkpage/internal/render"
)

// DocumentReader returns the typed content document.
type DocumentReader interface {
	Document(ctx context.Context) *models.Content
}

// Generations reports how many content changes have been announced.
type Generations interface {
	Generation() uint64
}

// Public serves the landing page. It checks the page cache before
// rendering and stores rendered results on miss.
type Public struct {
	store    DocumentReader
	renderer *render.Renderer
	pages    cache.Pages
	metrics  metrics.Recorder
	now      func() time.Time
	changes  Generations
}

// NewPublic creates the landing page handler. pages may be nil to render
// every request.
func NewPublic(store DocumentReader, renderer *render.Renderer, pages cache.Pages, rec metrics.Recorder) *Public {
	if rec == nil {
		rec = metrics.New(false)
	}
	return &Public{store: store, renderer: renderer, pages: pages, metrics: rec, now: time.Now}
}

// SetGenerations makes the handler skip caching a page whose render
// overlapped a content change.
func (p *Public) SetGenerations(g Generations) {
	p.changes = g
}

func (p *Public) generation() uint64 {
	if p.changes == nil {
		return 0
	}
	return p.changes.Generation()
}

// Homepage renders the landing page.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.pages != nil {
		if cached, ok := p.pages.Get(ctx, cache.HomepageKey()); ok {
			p.metrics.IncCacheHit()
			writeHTML(w, cached)
			return
		}
		p.metrics.IncCacheMiss()
	}

	gen := p.generation()
	rendered, err := p.renderer.Landing(p.store.Document(ctx), p.now())
	if err != nil {
		slog.Error("landing render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pages != nil {
		if p.generation() == gen {
			p.pages.Set(ctx, cache.HomepageKey(), rendered)
		} else {
			slog.Debug("content changed during render, not caching")
		}
	}
	writeHTML(w, rendered)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
