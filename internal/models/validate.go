package models

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

// requiredObjects are the top-level keys that must hold JSON objects.
var requiredObjects = []string{"stats", "status", "profile"}

// Validate performs the minimal structural check applied before a write:
// the payload is a JSON object whose stats, status and profile are
// non-null objects and whose links is an array. Field types inside those
// containers are not inspected, and notifications may be absent.
func Validate(raw []byte) error {
	fields, err := topLevel(raw)
	if err != nil {
		return err
	}
	for _, key := range requiredObjects {
		if kindOf(fields[key]) != '{' {
			return fmt.Errorf("%w: %s must be an object", ErrInvalidStructure, key)
		}
	}
	if kindOf(fields["links"]) != '[' {
		return fmt.Errorf("%w: links must be an array", ErrInvalidStructure)
	}
	return nil
}

// ValidateStrict runs Validate and then checks the typed document: field
// types, non-negative stat values, unique ids, known notification variants
// and ISO 8601 expiry timestamps.
func ValidateStrict(raw []byte) error {
	if err := Validate(raw); err != nil {
		return err
	}
	doc, err := decodeTyped(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	for _, m := range Metrics {
		if v := validate.Struct(doc.Stats.Get(m)); !v.Validate() {
			return fmt.Errorf("%w: stats.%s: %s", ErrInvalidStructure, m, v.Errors.One())
		}
	}

	seen := make(map[string]bool, len(doc.Links))
	for i, l := range doc.Links {
		if v := validate.Struct(&l); !v.Validate() {
			return fmt.Errorf("%w: links[%d]: %s", ErrInvalidStructure, i, v.Errors.One())
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate link id %q", ErrInvalidStructure, l.ID)
		}
		seen[l.ID] = true
	}

	seen = make(map[string]bool, len(doc.Notifications))
	for i, n := range doc.Notifications {
		if v := validate.Struct(&n); !v.Validate() {
			return fmt.Errorf("%w: notifications[%d]: %s", ErrInvalidStructure, i, v.Errors.One())
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate notification id %q", ErrInvalidStructure, n.ID)
		}
		seen[n.ID] = true
		if !n.Variant.Valid() {
			return fmt.Errorf("%w: notifications[%d]: unknown variant %q", ErrInvalidStructure, i, n.Variant)
		}
		if n.ExpiresAt != "" {
			if _, err := ParseExpiry(n.ExpiresAt); err != nil {
				return fmt.Errorf("%w: notifications[%d]: expiresAt is not an ISO 8601 timestamp", ErrInvalidStructure, i)
			}
		}
	}
	return nil
}

// IsEmptyObject reports whether raw is the JSON object {}.
func IsEmptyObject(raw []byte) bool {
	fields, err := topLevel(raw)
	return err == nil && len(fields) == 0
}

// NormalizeRaw guarantees a notifications array on a stored document while
// leaving every other field byte-for-byte as it was persisted.
func NormalizeRaw(raw []byte) ([]byte, error) {
	fields, err := topLevel(raw)
	if err != nil {
		return nil, err
	}
	if kindOf(fields["notifications"]) == '[' {
		return raw, nil
	}
	fields["notifications"] = json.RawMessage("[]")
	return json.Marshal(fields)
}

// Encode serializes a typed document.
func Encode(doc *Content) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return data, nil
}

// topLevel splits a JSON object into its raw members.
func topLevel(raw []byte) (map[string]json.RawMessage, error) {
	if kindOf(raw) != '{' {
		return nil, fmt.Errorf("%w: document must be a JSON object", ErrInvalidStructure)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	return fields, nil
}

// kindOf returns the first significant byte of a JSON value, or 0 if empty.
func kindOf(raw []byte) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
