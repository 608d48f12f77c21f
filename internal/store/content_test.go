package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpage/internal/models"
)

func TestReadFreshStoreReturnsDefault(t *testing.T) {
	s := NewContentStore(NewMemoryBackend())

	doc, err := models.Decode(s.Read(context.Background()))
	require.NoError(t, err)
	assert.True(t, models.Default().Equal(doc))
	assert.Len(t, doc.Links, 6)
	assert.NotNil(t, doc.Notifications)
	assert.Empty(t, doc.Notifications)
}

func TestReadUnreachableReturnsDefault(t *testing.T) {
	s := NewContentStore(failingBackend{err: errUnreachable})

	doc := s.Document(context.Background())
	assert.True(t, models.Default().Equal(doc))
}

func TestReadCorruptReturnsDefault(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Save(context.Background(), []byte(`not json`)))

	s := NewContentStore(b)
	assert.True(t, models.Default().Equal(s.Document(context.Background())))
}

func TestWriteThenRead(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore(NewMemoryBackend())

	d := models.Default()
	d.Status.Text = "Niedostępny"
	d.Links = d.Links[:2]
	d.Notifications = []models.Notification{{ID: "n1", Variant: models.VariantAlert, Visible: true}}
	raw, err := models.Encode(d)
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, raw))
	assert.True(t, d.Equal(s.Document(ctx)))
}

func TestReadNormalizesMissingNotifications(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, []byte(`{"stats":{},"status":{"text":"old"},"profile":{},"links":[]}`)))

	s := NewContentStore(b)
	assert.JSONEq(t,
		`{"stats":{},"status":{"text":"old"},"profile":{},"links":[],"notifications":[]}`,
		string(s.Read(ctx)),
	)
}

func TestReadKeepsLooseFields(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore(NewMemoryBackend())

	body := `{"stats":{"subscribers":{"value":"lots"}},"status":{},"profile":{},"links":[],"notifications":[]}`
	require.NoError(t, s.Write(ctx, []byte(body)))
	assert.JSONEq(t, body, string(s.Read(ctx)))
}

func TestDocumentCoercesLooseFields(t *testing.T) {
	ctx := context.Background()
	s := NewContentStore(NewMemoryBackend())

	body := `{"stats":{"subscribers":{"value":"600","display":"600K"}},"status":{"text":"Na wakacjach"},"profile":{},"links":[]}`
	require.NoError(t, s.Write(ctx, []byte(body)))

	doc := s.Document(ctx)
	assert.Equal(t, 600, doc.Stats.Subscribers.Value)
	assert.Equal(t, "Na wakacjach", doc.Status.Text, "stored document should be shown, not the default")
	assert.Empty(t, doc.Links)
}

func TestWriteFailureWrapsPersistence(t *testing.T) {
	s := NewContentStore(failingBackend{err: errUnreachable})

	err := s.Write(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.ErrorIs(t, err, errUnreachable)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s := NewContentStore(b)

	created, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := b.Load(ctx)
	require.NoError(t, err)
	doc, err := models.Decode(stored)
	require.NoError(t, err)
	assert.True(t, models.Default().Equal(doc))

	created, err = s.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, created, "second seed must not overwrite")
}

func TestSeedKeepsExistingDocument(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, []byte(`{"custom":true}`)))

	created, err := NewContentStore(b).Seed(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	stored, _ := b.Load(ctx)
	assert.JSONEq(t, `{"custom":true}`, string(stored))
}

func TestSeedUnreachable(t *testing.T) {
	_, err := NewContentStore(failingBackend{err: errUnreachable}).Seed(context.Background())
	assert.ErrorIs(t, err, errUnreachable)
}

func TestBackendName(t *testing.T) {
	assert.Equal(t, "memory", NewContentStore(NewMemoryBackend()).Backend())
}
