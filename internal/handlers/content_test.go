package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpage/internal/models"
	"linkpage/internal/store"
)

func TestGetFreshStoreReturnsDefault(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	rr := env.get()
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	doc, err := models.Decode(rr.Body.Bytes())
	require.NoError(t, err)
	assert.True(t, models.Default().Equal(doc))
	assert.Len(t, doc.Links, 6)
	assert.Empty(t, doc.Notifications)
}

func TestGetNormalizesLegacyDocument(t *testing.T) {
	backend := store.NewMemoryBackend()
	env := newTestEnv(t, backend, false)
	require.NoError(t, backend.Save(t.Context(), []byte(`{"stats":{},"status":{},"profile":{},"links":[]}`)))

	rr := env.get()
	assert.JSONEq(t, `{"stats":{},"status":{},"profile":{},"links":[],"notifications":[]}`, rr.Body.String())
}

func TestPostAuthProbe(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	rr := env.post(testPassword, `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"authenticated":true}`, rr.Body.String())

	_, err := env.Backend.Load(t.Context())
	assert.ErrorIs(t, err, store.ErrNotFound, "probe must not touch the store")
	assert.Zero(t, env.Notifier.calls.Load())
}

func TestPostWritesDocument(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	doc := models.Default()
	doc.Status.Text = "Niedostępny"
	rr := env.post(testPassword, encode(t, doc))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	got, err := models.Decode(env.get().Body.Bytes())
	require.NoError(t, err)
	assert.True(t, doc.Equal(got))
	assert.EqualValues(t, 1, env.Notifier.calls.Load())
}

func TestPostIdempotent(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)
	body := encode(t, models.Default())

	require.Equal(t, http.StatusOK, env.post(testPassword, body).Code)
	first := env.get().Body.String()
	require.Equal(t, http.StatusOK, env.post(testPassword, body).Code)
	assert.JSONEq(t, first, env.get().Body.String())
}

func TestPostWrongPasswordBeatsInvalidBody(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	for _, body := range []string{`{"links":{}}`, `not json`, `{}`} {
		rr := env.post("wrong", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "body %q", body)
		assert.Contains(t, rr.Body.String(), `"error"`)
	}

	rr := env.post("", `{"links":{}}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPostInvalidStructure(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	rr := env.post(testPassword, `{"stats":{},"status":null,"profile":{},"links":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "status must be an object")

	_, err := env.Backend.Load(t.Context())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostInvalidJSON(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	rr := env.post(testPassword, `{"stats":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid JSON"}`, rr.Body.String())
}

func TestPostDuplicateLinkIDsAcceptedByDefault(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	doc := models.Default()
	doc.Links[1].ID = doc.Links[0].ID
	rr := env.post(testPassword, encode(t, doc))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPostDuplicateLinkIDsRejectedWhenStrict(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), true)

	doc := models.Default()
	doc.Links[1].ID = doc.Links[0].ID
	rr := env.post(testPassword, encode(t, doc))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "duplicate link id")
}

func TestPostPersistenceFailure(t *testing.T) {
	env := newTestEnv(t, brokenBackend{store.NewMemoryBackend()}, false)

	rr := env.post(testPassword, encode(t, models.Default()))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"failed to save content"}`, rr.Body.String())
	assert.Zero(t, env.Notifier.calls.Load(), "failed writes must not revalidate")
}

func TestPostTooLarge(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	big := `{"stats":{},"status":{},"profile":{},"links":[],"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	rr := env.post(testPassword, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestAuthRoute(t *testing.T) {
	env := newTestEnv(t, store.NewMemoryBackend(), false)

	rr := httptest.NewRecorder()
	env.Content.Auth(rr, httptest.NewRequest(http.MethodPost, "/api/content/auth", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"authenticated":true}`, rr.Body.String())
}
