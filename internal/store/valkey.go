// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the key under which the document is stored in key-value
// and object backends.
const DefaultKey = "maltixon:content"

// ValkeyBackend stores the document as a single string value without
// expiry.
type ValkeyBackend struct {
	client *redis.Client
	key    string
}

// NewValkeyBackend returns a ValkeyBackend using key, or DefaultKey when
// key is empty.
func NewValkeyBackend(client *redis.Client, key string) *ValkeyBackend {
	if key == "" {
		key = DefaultKey
	}
	return &ValkeyBackend{client: client, key: key}
}

func (v *ValkeyBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := v.client.Get(ctx, v.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", v.key, err)
	}
	return data, nil
}

func (v *ValkeyBackend) Save(ctx context.Context, data []byte) error {
	if err := v.client.Set(ctx, v.key, data, 0).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", v.key, err)
	}
	return nil
}

func (v *ValkeyBackend) Name() string { return "valkey" }
