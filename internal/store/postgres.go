// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresBackend stores the document as a JSONB row in content_documents,
// keyed so several sites could share one database.
type PostgresBackend struct {
	db  *sql.DB
	key string
}

// NewPostgresBackend returns a PostgresBackend for key, or DefaultKey when
// key is empty. The schema is created by database.Migrate.
func NewPostgresBackend(db *sql.DB, key string) *PostgresBackend {
	if key == "" {
		key = DefaultKey
	}
	return &PostgresBackend{db: db, key: key}
}

func (p *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	var body string
	err := p.db.QueryRowContext(ctx,
		`SELECT body::text FROM content_documents WHERE key = $1`, p.key,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select content %s: %w", p.key, err)
	}
	return []byte(body), nil
}

func (p *PostgresBackend) Save(ctx context.Context, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO content_documents (key, body, updated_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (key)
		DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		p.key, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert content %s: %w", p.key, err)
	}
	return nil
}

func (p *PostgresBackend) Name() string { return "postgres" }
