package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Supported content backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Backends lists every accepted STORE_BACKEND value.
var Backends = []string{BackendMemory, BackendFile, BackendValkey, BackendPostgres, BackendS3}

// defaultAdminPassword mirrors the env-default of ADMIN_PASSWORD.
const defaultAdminPassword = "zmien-to-haslo"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Store.Backend) {
		return fmt.Errorf("store.backend must be one of %s (got %q)", strings.Join(Backends, ", "), c.Store.Backend)
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.FilePath == "" {
			return errors.New("store.file_path is required for the file backend")
		}
	case BackendS3:
		if c.S3.Endpoint == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" || c.S3.Bucket == "" {
			return errors.New("s3 endpoint, access_key, secret_key and bucket are required for the s3 backend")
		}
	}

	if c.Admin.RateLimit <= 0 {
		return fmt.Errorf("admin.rate_limit must be > 0 (got %d)", c.Admin.RateLimit)
	}
	if c.Admin.RateWindow <= 0 {
		return fmt.Errorf("admin.rate_window must be > 0 (got %v)", c.Admin.RateWindow)
	}
	if c.Cache.LocalMB < 0 {
		return fmt.Errorf("cache.local_mb must be >= 0 (got %d)", c.Cache.LocalMB)
	}

	if c.Server.Env == "production" && c.Admin.PasswordHash == "" &&
		(c.Admin.Password == "" || c.Admin.Password == defaultAdminPassword) {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set in production")
	}

	return nil
}
