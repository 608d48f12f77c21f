// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers: the content API used by
// the admin console and the public landing page.
package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"linkpage/internal/metrics"
	"linkpage/internal/models"
)

// MaxBodyBytes caps the size of a content POST.
const MaxBodyBytes = 1 << 20

// ContentStore is the persistence the content API reads and writes.
type ContentStore interface {
	Read(ctx context.Context) []byte
	Write(ctx context.Context, data []byte) error
}

// Notifier is told when the stored content changed.
type Notifier interface {
	Notify()
}

// Content serves GET and POST for the content document. POST routes must
// be mounted behind middleware.RequireAdminPassword.
type Content struct {
	store    ContentStore
	validate func([]byte) error
	notifier Notifier
	metrics  metrics.Recorder
}

// NewContent creates the content API handlers. When strict is set, writes
// go through models.ValidateStrict instead of the structural check.
// notifier and rec may be nil.
func NewContent(store ContentStore, strict bool, notifier Notifier, rec metrics.Recorder) *Content {
	if rec == nil {
		rec = metrics.New(false)
	}
	validate := models.Validate
	if strict {
		validate = models.ValidateStrict
	}
	return &Content{store: store, validate: validate, notifier: notifier, metrics: rec}
}

// Get returns the stored document. It never fails: the store falls back
// to the default document on its own.
func (c *Content) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(c.store.Read(r.Context()))
}

// Post replaces the stored document. An empty object only confirms the
// password and leaves the store untouched.
func (c *Content) Post(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	if !json.Valid(body) {
		c.metrics.IncContentWrite(metrics.WriteBadEncoding)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if models.IsEmptyObject(body) {
		c.metrics.IncContentWrite(metrics.WriteProbe)
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
		return
	}

	if err := c.validate(body); err != nil {
		c.metrics.IncContentWrite(metrics.WriteInvalid)
		slog.Info("content rejected", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.store.Write(r.Context(), body); err != nil {
		c.metrics.IncContentWrite(metrics.WriteFailed)
		writeError(w, http.StatusInternalServerError, "failed to save content")
		return
	}

	c.metrics.IncContentWrite(metrics.WriteOK)
	if c.notifier != nil {
		c.notifier.Notify()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Auth confirms a password without reading a body. The password itself is
// checked by the middleware in front of this handler.
func (c *Content) Auth(w http.ResponseWriter, r *http.Request) {
	c.metrics.IncContentWrite(metrics.WriteProbe)
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}
