// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"linkpage/internal/auth"
	"linkpage/internal/cache"
	"linkpage/internal/client"
	"linkpage/internal/editor"
	"linkpage/internal/handlers"
	"linkpage/internal/metrics"
	"linkpage/internal/middleware"
	"linkpage/internal/models"
	"linkpage/internal/render"
	"linkpage/internal/store"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// testServer builds the full router over an in-memory store.
func testServer(t *testing.T, rateLimit int) (*httptest.Server, *store.MemoryBackend) {
	t.Helper()

	gate, err := auth.NewGate("pw", "")
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}
	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	backend := store.NewMemoryBackend()
	st := store.NewContentStore(backend)
	rec := metrics.New(true)
	pages := cache.NewLocalCache(1, time.Minute)
	rl := middleware.NewRateLimiter(rateLimit, time.Minute)
	t.Cleanup(rl.Stop)

	h := New(Deps{
		Content:     handlers.NewContent(st, false, nil, rec),
		Public:      handlers.NewPublic(st, rn, pages, rec),
		Gate:        gate,
		RateLimiter: rl,
		Metrics:     rec,
		Static:      fstest.MapFS{"site.css": {Data: []byte("body{}")}},
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, backend
}

func do(t *testing.T, method, url, password, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if password != "" {
		req.Header.Set(auth.HeaderName, password)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes(t *testing.T) {
	srv, _ := testServer(t, 100)
	doc, _ := models.Encode(models.Default())

	tests := []struct {
		name     string
		method   string
		path     string
		password string
		body     string
		want     int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"landing", http.MethodGet, "/", "", "", http.StatusOK},
		{"content get", http.MethodGet, "/api/content", "", "", http.StatusOK},
		{"content alias get", http.MethodGet, "/content", "", "", http.StatusOK},
		{"probe", http.MethodPost, "/api/content", "pw", "{}", http.StatusOK},
		{"alias probe", http.MethodPost, "/content", "pw", "{}", http.StatusOK},
		{"auth route", http.MethodPost, "/api/content/auth", "pw", "", http.StatusOK},
		{"auth route wrong", http.MethodPost, "/api/content/auth", "nope", "", http.StatusUnauthorized},
		{"write", http.MethodPost, "/api/content", "pw", string(doc), http.StatusOK},
		{"wrong password invalid body", http.MethodPost, "/api/content", "nope", `{"links":1}`, http.StatusUnauthorized},
		{"invalid body", http.MethodPost, "/api/content", "pw", `{"links":1}`, http.StatusBadRequest},
		{"static", http.MethodGet, "/static/site.css", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"unknown", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.password, tt.body)
			if resp.StatusCode != tt.want {
				b, _ := io.ReadAll(resp.Body)
				t.Errorf("status: got %d, want %d (body %s)", resp.StatusCode, tt.want, b)
			}
			if resp.Header.Get("X-Frame-Options") != "DENY" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestProbeLeavesStoreUntouched(t *testing.T) {
	srv, backend := testServer(t, 100)

	resp := do(t, http.MethodPost, srv.URL+"/content", "pw", "{}")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("probe: got %d", resp.StatusCode)
	}
	if _, err := backend.Load(t.Context()); err != store.ErrNotFound {
		t.Errorf("probe should not write: %v", err)
	}

	var doc models.Content
	resp = do(t, http.MethodGet, srv.URL+"/content", "", "")
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !models.Default().Equal(&doc) {
		t.Error("GET after probe should still return the default document")
	}
}

func TestWriteRateLimited(t *testing.T) {
	srv, _ := testServer(t, 2)

	for i := 0; i < 2; i++ {
		if resp := do(t, http.MethodPost, srv.URL+"/api/content", "pw", "{}"); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: got %d", i+1, resp.StatusCode)
		}
	}
	if resp := do(t, http.MethodPost, srv.URL+"/api/content", "pw", "{}"); resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("got %d, want 429", resp.StatusCode)
	}

	// Reads are never rate limited.
	if resp := do(t, http.MethodGet, srv.URL+"/api/content", "", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("GET after limit: got %d", resp.StatusCode)
	}
}

func TestLandingGzip(t *testing.T) {
	srv, _ := testServer(t, 100)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Errorf("landing page should be gzip encoded, got %q", resp.Header.Get("Content-Encoding"))
	}
}

func fetchDoc(t *testing.T, url string) *models.Content {
	t.Helper()
	resp := do(t, http.MethodGet, url+"/api/content", "", "")
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc, err := models.Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestEditorSavesThroughServer(t *testing.T) {
	srv, _ := testServer(t, 100)
	ctx := t.Context()

	s := editor.New(client.New(srv.URL, nil), editor.WithFeedbackInterval(10*time.Millisecond))
	if err := s.Login(ctx, "nope"); err == nil {
		t.Fatal("wrong password should be rejected")
	}
	if err := s.Login(ctx, "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Working() == nil {
		t.Fatal("login should load the document")
	}

	if err := s.Apply(editor.SetStatusText("Niedostępny")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.Apply(editor.SetStatValue{Metric: models.MetricSubscribers, Value: 610}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.HasUnsavedChanges() {
		t.Error("saved session should be clean")
	}

	doc := fetchDoc(t, srv.URL)
	if doc.Status.Text != "Niedostępny" {
		t.Errorf("status text: got %q", doc.Status.Text)
	}
	if doc.Stats.Subscribers.Value != 610 {
		t.Errorf("subscribers: got %d", doc.Stats.Subscribers.Value)
	}

	resp := do(t, http.MethodGet, srv.URL+"/", "", "")
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "Niedostępny") {
		t.Error("landing page should show the saved status")
	}
}

func TestEditorLoadsLooselyTypedDocument(t *testing.T) {
	srv, backend := testServer(t, 100)
	ctx := t.Context()

	loose := `{"stats":{"subscribers":{"value":"592","display":"592K","suffix":"K"}},` +
		`"status":{"available":"true","text":"Na wakacjach"},"profile":{},"links":[]}`
	if err := backend.Save(ctx, []byte(loose)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := do(t, http.MethodGet, srv.URL+"/", "", "")
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "Na wakacjach") {
		t.Error("landing page should render the stored document, not the default")
	}

	s := editor.New(client.New(srv.URL, nil), editor.WithFeedbackInterval(10*time.Millisecond))
	if err := s.Login(ctx, "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	working := s.Working()
	if working == nil {
		t.Fatal("loosely typed document should still load")
	}
	if working.Stats.Subscribers.Value != 592 {
		t.Errorf("subscribers: got %d, want 592", working.Stats.Subscribers.Value)
	}
	if !working.Status.Available {
		t.Error("available should be read from the string")
	}

	if err := s.Apply(editor.SetTagline("Nowy opis")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc := fetchDoc(t, srv.URL)
	if doc.Stats.Subscribers.Value != 592 || doc.Profile.Tagline != "Nowy opis" {
		t.Errorf("saved document: subscribers %d tagline %q", doc.Stats.Subscribers.Value, doc.Profile.Tagline)
	}
	raw, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Contains(string(raw), `"592"`) {
		t.Error("saving should store the value as a number")
	}
}
