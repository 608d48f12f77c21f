// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists the single content document. A ContentStore sits
// on top of a pluggable Backend that moves opaque JSON bytes to and from a
// memory buffer, a file, Valkey, PostgreSQL or an S3 bucket.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend that has never been written.
var ErrNotFound = errors.New("content not found")

// Backend loads and replaces the stored document as raw JSON. Every Save
// replaces the previous value wholesale.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Name() string
}
