// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"linkpage/internal/auth"
)

// PasswordChecker verifies an admin password.
type PasswordChecker interface {
	CheckPassword(candidate string) bool
}

// RequireAdminPassword rejects requests whose x-admin-password header does
// not match with 401. The request body is never read before the check.
func RequireAdminPassword(gate PasswordChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.CheckPassword(r.Header.Get(auth.HeaderName)) {
				slog.Warn("admin password rejected", "path", r.URL.Path, "remote", clientIP(r))
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
