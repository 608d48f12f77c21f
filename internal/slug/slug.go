// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives stable, URL-friendly identifiers for links and
// notifications from their human-readable labels.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace collapses runs of spaces, tabs and newlines.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Polish diacritics are folded to their ASCII base letter so labels such as
// "Współpraca" keep their readable shape.
var diacritics = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
	"á", "a", "à", "a", "é", "e", "è", "e", "í", "i",
	"ú", "u", "ü", "u", "ö", "o", "ñ", "n", "ç", "c",
)

// maxLen caps generated slugs so ids stay readable in the editor.
const maxLen = 48

// Generate creates a URL-friendly slug from the given string.
// Example: "Wsparcie na Patronite!" → "wsparcie-na-patronite"
func Generate(s string) string {
	result := diacritics.Replace(strings.ToLower(strings.TrimSpace(s)))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLen {
		result = strings.TrimRight(result[:maxLen], "-")
	}
	return result
}

// Unique returns an identifier for label that is not in taken. Labels that
// produce an empty slug, or whose slug is already used, get a short random
// suffix. prefix is used when the label has no usable characters.
func Unique(label, prefix string, taken func(id string) bool) string {
	base := Generate(label)
	if base == "" {
		base = prefix
	}
	if base != "" && !taken(base) {
		return base
	}
	for {
		id := base + "-" + uuid.NewString()[:8]
		if base == "" {
			id = uuid.NewString()
		}
		if !taken(id) {
			return id
		}
	}
}
