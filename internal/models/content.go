// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Metric names a tracked profile statistic.
type Metric string

const (
	MetricSubscribers Metric = "subscribers"
	MetricViews       Metric = "views"
	MetricFollowers   Metric = "followers"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricSubscribers, MetricViews, MetricFollowers}

// NotificationVariant selects the visual style of a notification banner.
type NotificationVariant string

const (
	VariantStream    NotificationVariant = "stream"
	VariantInfo      NotificationVariant = "info"
	VariantAlert     NotificationVariant = "alert"
	VariantSuccess   NotificationVariant = "success"
	VariantPromo     NotificationVariant = "promo"
	VariantTopDonate NotificationVariant = "top-donate"
)

// NotificationVariants lists every accepted variant.
var NotificationVariants = []NotificationVariant{
	VariantStream, VariantInfo, VariantAlert, VariantSuccess, VariantPromo, VariantTopDonate,
}

// Valid reports whether v is one of the known variants.
func (v NotificationVariant) Valid() bool {
	return slices.Contains(NotificationVariants, v)
}

// Stat is a single profile counter. Display is free text and is not
// derived from Value; the editor keeps both in sync by hand.
type Stat struct {
	Value   int    `json:"value" validate:"min:0"`
	Display string `json:"display"`
	Suffix  string `json:"suffix"`
}

// Stats holds the three profile counters shown on the landing page.
type Stats struct {
	Subscribers Stat `json:"subscribers"`
	Views       Stat `json:"views"`
	Followers   Stat `json:"followers"`
}

// Get returns a pointer to the stat for m, or nil for an unknown metric.
func (s *Stats) Get(m Metric) *Stat {
	switch m {
	case MetricSubscribers:
		return &s.Subscribers
	case MetricViews:
		return &s.Views
	case MetricFollowers:
		return &s.Followers
	}
	return nil
}

// Status is the availability banner.
type Status struct {
	Available  bool   `json:"available"`
	Text       string `json:"text"`
	StreamInfo string `json:"streamInfo"`
}

// Profile is the creator identity block.
type Profile struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Preferred string `json:"preferred"`
}

// Link is one entry of the ordered link list.
type Link struct {
	ID      string `json:"id" validate:"required"`
	Label   string `json:"label"`
	Sub     string `json:"sub"`
	URL     string `json:"url"`
	Emoji   string `json:"emoji"`
	Color   string `json:"color"`
	Visible bool   `json:"visible"`
}

// Notification is one banner of the ordered notification list.
// URL, URLLabel and ExpiresAt are optional and omitted when empty.
type Notification struct {
	ID          string              `json:"id" validate:"required"`
	Variant     NotificationVariant `json:"variant"`
	Emoji       string              `json:"emoji"`
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	URL         string              `json:"url,omitempty"`
	URLLabel    string              `json:"urlLabel,omitempty"`
	Visible     bool                `json:"visible"`
	Dismissible bool                `json:"dismissible"`
	ExpiresAt   string              `json:"expiresAt,omitempty"`
}

// Active reports whether the notification should be shown at time now.
// An unparseable ExpiresAt is ignored rather than hiding the banner.
func (n Notification) Active(now time.Time) bool {
	if !n.Visible {
		return false
	}
	if n.ExpiresAt == "" {
		return true
	}
	expires, err := ParseExpiry(n.ExpiresAt)
	if err != nil {
		return true
	}
	return !expires.Before(now)
}

// expiryLayouts are the ISO 8601 forms accepted for ExpiresAt, tried in
// order. Layouts without a zone are read as UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15:04Z07:00",
	time.DateTime,
	time.DateOnly,
}

// ParseExpiry parses an ISO 8601 timestamp. A date without a time means
// the start of that day in UTC.
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Content is the single persisted document behind the landing page.
// It is always replaced as a whole.
type Content struct {
	Stats         Stats          `json:"stats"`
	Status        Status         `json:"status"`
	Profile       Profile        `json:"profile"`
	Links         []Link         `json:"links"`
	Notifications []Notification `json:"notifications"`
}

// Clone returns a deep copy. Link and Notification hold only value
// fields, so cloning the slices is enough to make the copy independent.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Links = slices.Clone(c.Links)
	cp.Notifications = slices.Clone(c.Notifications)
	if cp.Notifications == nil {
		cp.Notifications = []Notification{}
	}
	return &cp
}

// Equal reports whether c and other hold the same content. A nil and an
// empty list compare equal.
func (c *Content) Equal(other *Content) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Stats == other.Stats &&
		c.Status == other.Status &&
		c.Profile == other.Profile &&
		slices.Equal(c.Links, other.Links) &&
		slices.Equal(c.Notifications, other.Notifications)
}

// Normalize fills in fields that older documents may lack.
func (c *Content) Normalize() {
	if c.Links == nil {
		c.Links = []Link{}
	}
	if c.Notifications == nil {
		c.Notifications = []Notification{}
	}
}

// VisibleLinks returns the links flagged visible, in display order.
func (c *Content) VisibleLinks() []Link {
	out := make([]Link, 0, len(c.Links))
	for _, l := range c.Links {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// ActiveNotifications returns the notifications to show at time now.
func (c *Content) ActiveNotifications(now time.Time) []Notification {
	out := make([]Notification, 0, len(c.Notifications))
	for _, n := range c.Notifications {
		if n.Active(now) {
			out = append(out, n)
		}
	}
	return out
}
