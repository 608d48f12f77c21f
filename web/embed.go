// Package web provides the embedded static assets (stylesheet and the
// notification dismissal script) served at /static/ by the landing page.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
