// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns the content document into the public landing page.
// Templates are embedded and parsed once at startup.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"linkpage/internal/markdown"
	"linkpage/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// statLabels are the captions shown under each counter.
var statLabels = map[models.Metric][2]string{
	models.MetricSubscribers: {"Subskrybentów", "YouTube"},
	models.MetricViews:       {"Wyświetleń", "Łącznie"},
	models.MetricFollowers:   {"Obserwujących", "Instagram"},
}

// LandingData is the view model for the landing page.
type LandingData struct {
	Profile       models.Profile
	Status        models.Status
	Stats         []StatView
	Links         []models.Link
	Notifications []NotificationView
	Year          int
}

// StatView is one counter with its captions.
type StatView struct {
	ID       models.Metric
	Display  string
	Label    string
	Sublabel string
}

// NotificationView is an active notification with its message rendered.
type NotificationView struct {
	models.Notification
	MessageHTML template.HTML
}

// Renderer executes the embedded page templates.
type Renderer struct {
	landing *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		// variantClass maps a notification variant to its CSS modifier,
		// falling back to info for unknown values.
		"variantClass": func(v models.NotificationVariant) string {
			if !v.Valid() {
				v = models.VariantInfo
			}
			return "notice--" + string(v)
		},
		"safeColor": safeColor,
	}

	tmpl, err := template.New("landing.html").Funcs(funcMap).ParseFS(templateFS, "templates/landing.html")
	if err != nil {
		return nil, fmt.Errorf("parse landing template: %w", err)
	}
	return &Renderer{landing: tmpl}, nil
}

// Landing renders the public page for doc as of now.
func (rn *Renderer) Landing(doc *models.Content, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.landing.Execute(&buf, NewLandingData(doc, now)); err != nil {
		return nil, fmt.Errorf("render landing: %w", err)
	}
	return buf.Bytes(), nil
}

// NewLandingData builds the view model: visible links in order and
// notifications that are visible and not expired.
func NewLandingData(doc *models.Content, now time.Time) LandingData {
	data := LandingData{
		Profile: doc.Profile,
		Status:  doc.Status,
		Links:   doc.VisibleLinks(),
		Year:    now.Year(),
	}

	for _, m := range models.Metrics {
		s := doc.Stats.Get(m)
		labels := statLabels[m]
		data.Stats = append(data.Stats, StatView{
			ID:       m,
			Display:  s.Display,
			Label:    labels[0],
			Sublabel: labels[1],
		})
	}

	for _, n := range doc.ActiveNotifications(now) {
		data.Notifications = append(data.Notifications, NotificationView{
			Notification: n,
			MessageHTML:  markdown.Safe(n.Message),
		})
	}
	return data
}

// safeColor passes through hex colours and drops anything else, so a
// stored value can never break out of the style attribute.
func safeColor(c string) template.CSS {
	if len(c) != 4 && len(c) != 7 || c[0] != '#' {
		return ""
	}
	for _, r := range c[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return ""
		}
	}
	return template.CSS("--accent: " + c)
}
