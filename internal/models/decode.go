package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// fieldKind is the JSON type a document field decodes into.
type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
)

type schema map[string]fieldKind

var (
	statSchema    = schema{"value": kindInt, "display": kindString, "suffix": kindString}
	statusSchema  = schema{"available": kindBool, "text": kindString, "streamInfo": kindString}
	profileSchema = schema{"name": kindString, "tagline": kindString, "preferred": kindString}
	linkSchema    = schema{
		"id": kindString, "label": kindString, "sub": kindString, "url": kindString,
		"emoji": kindString, "color": kindString, "visible": kindBool,
	}
	notificationSchema = schema{
		"id": kindString, "variant": kindString, "emoji": kindString, "title": kindString,
		"message": kindString, "url": kindString, "urlLabel": kindString,
		"visible": kindBool, "dismissible": kindBool, "expiresAt": kindString,
	}
)

// Decode parses raw into a typed document and normalizes it. The write
// path only checks the outer shape, so a stored document may carry
// wrongly typed fields such as "value": "592". Those are coerced to the
// field's type instead of failing, keeping the document loadable and
// editable.
func Decode(raw []byte) (*Content, error) {
	doc, err := decodeTyped(raw)
	if err == nil {
		return doc, nil
	}

	var tree map[string]any
	if jerr := json.Unmarshal(raw, &tree); jerr != nil || tree == nil {
		return nil, err
	}
	coerceDocument(tree)
	fixed, merr := json.Marshal(tree)
	if merr != nil {
		return nil, err
	}
	doc, lerr := decodeTyped(fixed)
	if lerr != nil {
		return nil, err
	}
	return doc, nil
}

// decodeTyped decodes raw without any coercion.
func decodeTyped(raw []byte) (*Content, error) {
	var doc Content
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func coerceDocument(tree map[string]any) {
	stats := objectAt(tree, "stats")
	for _, m := range Metrics {
		coerceObject(objectAt(stats, string(m)), statSchema)
	}
	coerceObject(objectAt(tree, "status"), statusSchema)
	coerceObject(objectAt(tree, "profile"), profileSchema)
	coerceList(tree, "links", linkSchema)
	coerceList(tree, "notifications", notificationSchema)
}

// objectAt returns parent[key] as an object, replacing anything else with
// an empty one.
func objectAt(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}

// coerceList drops entries that are not objects and coerces the rest.
// A missing or non-array list becomes empty.
func coerceList(parent map[string]any, key string, s schema) {
	items, _ := parent[key].([]any)
	kept := make([]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			coerceObject(m, s)
			kept = append(kept, m)
		}
	}
	parent[key] = kept
}

func coerceObject(m map[string]any, s schema) {
	for key, kind := range s {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch kind {
		case kindInt:
			m[key] = looseInt(v)
		case kindBool:
			m[key] = looseBool(v)
		default:
			m[key] = looseString(v)
		}
	}
}

// looseInt accepts numbers and numeric strings, truncating fractions.
// Anything else, or a value out of range, is 0.
func looseInt(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	f = math.Trunc(f)
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func looseBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(x))
		return b
	case float64:
		return x != 0
	}
	return false
}

func looseString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}
