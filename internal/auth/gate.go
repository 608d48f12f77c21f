// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the single shared admin password that gates
// writes to the content API.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HeaderName is the request header carrying the admin password.
const HeaderName = "x-admin-password"

// DefaultPassword is used when no password is configured.
const DefaultPassword = "zmien-to-haslo"

// bcryptCost is the work factor for HashPassword.
const bcryptCost = 12

// Gate checks candidate passwords against the configured secret. When a
// bcrypt hash is configured it takes precedence over the plain password.
type Gate struct {
	password []byte
	hash     []byte
}

// NewGate returns a Gate for password, or for hash when hash is non-empty.
// An empty password falls back to DefaultPassword.
func NewGate(password, hash string) (*Gate, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &Gate{hash: []byte(hash)}, nil
	}
	if password == "" {
		password = DefaultPassword
	}
	return &Gate{password: []byte(password)}, nil
}

// CheckPassword reports whether candidate matches the configured secret.
// An empty candidate never matches.
func (g *Gate) CheckPassword(candidate string) bool {
	if candidate == "" {
		return false
	}
	if g.hash != nil {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(g.password, []byte(candidate)) == 1
}

// Hashed reports whether the gate compares against a bcrypt hash.
func (g *Gate) Hashed() bool {
	return g.hash != nil
}

// HashPassword creates a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}
