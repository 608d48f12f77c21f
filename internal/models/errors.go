package models

import "errors"

// Error taxonomy shared by the content API, its client and the editor.
var (
	// ErrUnauthorized means the admin password was missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidStructure means a write payload failed validation.
	ErrInvalidStructure = errors.New("invalid content structure")

	// ErrPersistence means the backing store rejected a write.
	ErrPersistence = errors.New("persistence failed")

	// ErrLoad means the document could not be fetched after login.
	ErrLoad = errors.New("content load failed")

	// ErrNetwork means the request never produced an HTTP response.
	ErrNetwork = errors.New("network failure")
)
