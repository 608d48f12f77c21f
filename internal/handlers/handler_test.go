// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: an in-memory store wired the same way the server wires it.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"linkpage/internal/auth"
	"linkpage/internal/middleware"
	"linkpage/internal/models"
	"linkpage/internal/store"
)

const testPassword = "test-password"

// countingNotifier records Notify calls.
type countingNotifier struct {
	calls atomic.Int32
}

func (n *countingNotifier) Notify() { n.calls.Add(1) }

// brokenBackend loads fine from memory but rejects every write.
type brokenBackend struct {
	*store.MemoryBackend
}

func (brokenBackend) Save(context.Context, []byte) error { return errors.New("disk full") }

// testEnv bundles a content handler with its store and notifier.
type testEnv struct {
	Store    *store.ContentStore
	Backend  store.Backend
	Notifier *countingNotifier
	Content  *Content
	Post     http.Handler
}

func newTestEnv(t *testing.T, backend store.Backend, strict bool) *testEnv {
	t.Helper()

	gate, err := auth.NewGate(testPassword, "")
	require.NoError(t, err)

	st := store.NewContentStore(backend)
	notifier := &countingNotifier{}
	c := NewContent(st, strict, notifier, nil)

	return &testEnv{
		Store:    st,
		Backend:  backend,
		Notifier: notifier,
		Content:  c,
		Post:     middleware.RequireAdminPassword(gate)(http.HandlerFunc(c.Post)),
	}
}

// post sends body to the gated POST handler with password (omitted when empty).
func (e *testEnv) post(password, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/content", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if password != "" {
		req.Header.Set(auth.HeaderName, password)
	}
	rr := httptest.NewRecorder()
	e.Post.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get() *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.Content.Get(rr, httptest.NewRequest(http.MethodGet, "/api/content", nil))
	return rr
}

func encode(t *testing.T, doc *models.Content) string {
	t.Helper()
	raw, err := models.Encode(doc)
	require.NoError(t, err)
	return string(raw)
}
