// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"linkpage/internal/models"
)

// ContentStore reads and writes the content document. Reads never fail:
// a missing or unreachable document is replaced by the default seed.
// Writes always report backend failures.
type ContentStore struct {
	backend Backend
}

// NewContentStore returns a ContentStore backed by b.
func NewContentStore(b Backend) *ContentStore {
	return &ContentStore{backend: b}
}

// Backend returns the name of the underlying backend.
func (s *ContentStore) Backend() string {
	return s.backend.Name()
}

// Read returns the stored document as JSON with notifications normalized
// to an array. Fields are otherwise returned as they were written.
func (s *ContentStore) Read(ctx context.Context) []byte {
	data, err := s.backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		slog.Debug("content not yet written, serving default", "backend", s.backend.Name())
		return defaultJSON()
	case err != nil:
		slog.Warn("content read failed, serving default", "backend", s.backend.Name(), "error", err)
		return defaultJSON()
	}

	normalized, err := models.NormalizeRaw(data)
	if err != nil {
		slog.Warn("stored content is not a JSON object, serving default", "backend", s.backend.Name(), "error", err)
		return defaultJSON()
	}
	return normalized
}

// Document returns the stored document decoded into its typed form. A
// document that cannot be decoded yields the default.
func (s *ContentStore) Document(ctx context.Context) *models.Content {
	doc, err := models.Decode(s.Read(ctx))
	if err != nil {
		slog.Warn("stored content does not decode, using default", "error", err)
		return models.Default()
	}
	return doc
}

// Write replaces the stored document with data. The caller is expected
// to have validated it. Failures wrap models.ErrPersistence.
func (s *ContentStore) Write(ctx context.Context, data []byte) error {
	if err := s.backend.Save(ctx, data); err != nil {
		slog.Error("content write failed", "backend", s.backend.Name(), "error", err)
		return fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}
	slog.Info("content written", "backend", s.backend.Name(), "bytes", len(data))
	return nil
}

// Seed persists the default document when the backend has never been
// written. It reports whether a document was created.
func (s *ContentStore) Seed(ctx context.Context) (bool, error) {
	_, err := s.backend.Load(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("seed check: %w", err)
	}

	if err := s.backend.Save(ctx, defaultJSON()); err != nil {
		return false, fmt.Errorf("seed write: %w", err)
	}
	slog.Info("default content seeded", "backend", s.backend.Name())
	return true, nil
}

func defaultJSON() []byte {
	data, err := models.Encode(models.Default())
	if err != nil {
		// The default document is a fixed value of plain types.
		panic(err)
	}
	return data
}
