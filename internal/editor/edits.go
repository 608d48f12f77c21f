package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"linkpage/internal/models"
	"linkpage/internal/slug"
)

var (
	// ErrIndexOutOfRange means an edit addressed a list entry that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownField means an edit named a field the entry does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotAdjacent means a move was asked to jump more than one position.
	ErrNotAdjacent = errors.New("entries can only move by one position")
)

// Defaults for freshly added entries.
const (
	NewLinkLabel = "Nowy link"
	NewLinkURL   = "https://"
	NewLinkEmoji = "🔗"
	NewLinkColor = "#6c63ff"

	NewNotificationEmoji = "📢"
)

// Edit is a single change to the working copy. Edits are applied to a fresh
// clone of the document, so a failing edit leaves the session untouched.
type Edit interface {
	apply(doc *models.Content) error
}

// LinkField names an editable text field of a link.
type LinkField string

const (
	LinkLabel LinkField = "label"
	LinkSub   LinkField = "sub"
	LinkURL   LinkField = "url"
	LinkEmoji LinkField = "emoji"
	LinkColor LinkField = "color"
)

// NotificationField names an editable text field of a notification.
type NotificationField string

const (
	NotificationEmoji     NotificationField = "emoji"
	NotificationTitle     NotificationField = "title"
	NotificationMessage   NotificationField = "message"
	NotificationURL       NotificationField = "url"
	NotificationURLLabel  NotificationField = "urlLabel"
	NotificationExpiresAt NotificationField = "expiresAt"
)

// --- stats ---

type SetStatValue struct {
	Metric models.Metric
	Value  int
}

func (e SetStatValue) apply(doc *models.Content) error {
	s, err := stat(doc, e.Metric)
	if err != nil {
		return err
	}
	s.Value = e.Value
	return nil
}

type SetStatDisplay struct {
	Metric  models.Metric
	Display string
}

func (e SetStatDisplay) apply(doc *models.Content) error {
	s, err := stat(doc, e.Metric)
	if err != nil {
		return err
	}
	s.Display = e.Display
	return nil
}

type SetStatSuffix struct {
	Metric models.Metric
	Suffix string
}

func (e SetStatSuffix) apply(doc *models.Content) error {
	s, err := stat(doc, e.Metric)
	if err != nil {
		return err
	}
	s.Suffix = e.Suffix
	return nil
}

func stat(doc *models.Content, m models.Metric) (*models.Stat, error) {
	s := doc.Stats.Get(m)
	if s == nil {
		return nil, fmt.Errorf("%w: stat %q", ErrUnknownField, m)
	}
	return s, nil
}

// --- status and profile ---

type SetAvailable bool

func (e SetAvailable) apply(doc *models.Content) error {
	doc.Status.Available = bool(e)
	return nil
}

type SetStatusText string

func (e SetStatusText) apply(doc *models.Content) error {
	doc.Status.Text = string(e)
	return nil
}

type SetStreamInfo string

func (e SetStreamInfo) apply(doc *models.Content) error {
	doc.Status.StreamInfo = string(e)
	return nil
}

type SetProfileName string

func (e SetProfileName) apply(doc *models.Content) error {
	doc.Profile.Name = string(e)
	return nil
}

type SetTagline string

func (e SetTagline) apply(doc *models.Content) error {
	doc.Profile.Tagline = string(e)
	return nil
}

type SetPreferred string

func (e SetPreferred) apply(doc *models.Content) error {
	doc.Profile.Preferred = string(e)
	return nil
}

// --- links ---

type SetLinkField struct {
	Index int
	Field LinkField
	Value string
}

func (e SetLinkField) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Links)); err != nil {
		return err
	}
	l := &doc.Links[e.Index]
	switch e.Field {
	case LinkLabel:
		l.Label = e.Value
	case LinkSub:
		l.Sub = e.Value
	case LinkURL:
		l.URL = e.Value
	case LinkEmoji:
		l.Emoji = e.Value
	case LinkColor:
		l.Color = e.Value
	default:
		return fmt.Errorf("%w: link %q", ErrUnknownField, e.Field)
	}
	return nil
}

type SetLinkVisible struct {
	Index   int
	Visible bool
}

func (e SetLinkVisible) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Links)); err != nil {
		return err
	}
	doc.Links[e.Index].Visible = e.Visible
	return nil
}

// AddLink appends a visible link. An empty Label uses NewLinkLabel; the id
// is derived from the label and made unique within the document.
type AddLink struct {
	Label string
}

func (e AddLink) apply(doc *models.Content) error {
	label := e.Label
	if label == "" {
		label = NewLinkLabel
	}
	id := slug.Unique(label, "link", func(id string) bool {
		for _, l := range doc.Links {
			if l.ID == id {
				return true
			}
		}
		return false
	})
	doc.Links = append(doc.Links, models.Link{
		ID:      id,
		Label:   label,
		URL:     NewLinkURL,
		Emoji:   NewLinkEmoji,
		Color:   NewLinkColor,
		Visible: true,
	})
	return nil
}

type DeleteLink int

func (e DeleteLink) apply(doc *models.Content) error {
	i := int(e)
	if err := checkIndex(i, len(doc.Links)); err != nil {
		return err
	}
	doc.Links = append(doc.Links[:i], doc.Links[i+1:]...)
	return nil
}

// MoveLink swaps the link at From with its neighbour at To.
type MoveLink struct {
	From, To int
}

func (e MoveLink) apply(doc *models.Content) error {
	return swap(doc.Links, e.From, e.To)
}

// --- notifications ---

type SetNotificationField struct {
	Index int
	Field NotificationField
	Value string
}

func (e SetNotificationField) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Notifications)); err != nil {
		return err
	}
	n := &doc.Notifications[e.Index]
	switch e.Field {
	case NotificationEmoji:
		n.Emoji = e.Value
	case NotificationTitle:
		n.Title = e.Value
	case NotificationMessage:
		n.Message = e.Value
	case NotificationURL:
		n.URL = e.Value
	case NotificationURLLabel:
		n.URLLabel = e.Value
	case NotificationExpiresAt:
		n.ExpiresAt = e.Value
	default:
		return fmt.Errorf("%w: notification %q", ErrUnknownField, e.Field)
	}
	return nil
}

type SetNotificationVariant struct {
	Index   int
	Variant models.NotificationVariant
}

func (e SetNotificationVariant) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Notifications)); err != nil {
		return err
	}
	if !e.Variant.Valid() {
		return fmt.Errorf("%w: variant %q", ErrUnknownField, e.Variant)
	}
	doc.Notifications[e.Index].Variant = e.Variant
	return nil
}

type SetNotificationVisible struct {
	Index   int
	Visible bool
}

func (e SetNotificationVisible) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Notifications)); err != nil {
		return err
	}
	doc.Notifications[e.Index].Visible = e.Visible
	return nil
}

type SetNotificationDismissible struct {
	Index       int
	Dismissible bool
}

func (e SetNotificationDismissible) apply(doc *models.Content) error {
	if err := checkIndex(e.Index, len(doc.Notifications)); err != nil {
		return err
	}
	doc.Notifications[e.Index].Dismissible = e.Dismissible
	return nil
}

// AddNotification appends a visible, dismissible notification. An empty
// Variant means info.
type AddNotification struct {
	Variant models.NotificationVariant
}

func (e AddNotification) apply(doc *models.Content) error {
	variant := e.Variant
	if variant == "" {
		variant = models.VariantInfo
	}
	if !variant.Valid() {
		return fmt.Errorf("%w: variant %q", ErrUnknownField, variant)
	}
	doc.Notifications = append(doc.Notifications, models.Notification{
		ID:          uuid.NewString(),
		Variant:     variant,
		Emoji:       NewNotificationEmoji,
		Visible:     true,
		Dismissible: true,
	})
	return nil
}

type DeleteNotification int

func (e DeleteNotification) apply(doc *models.Content) error {
	i := int(e)
	if err := checkIndex(i, len(doc.Notifications)); err != nil {
		return err
	}
	doc.Notifications = append(doc.Notifications[:i], doc.Notifications[i+1:]...)
	return nil
}

// MoveNotification swaps the notification at From with its neighbour at To.
type MoveNotification struct {
	From, To int
}

func (e MoveNotification) apply(doc *models.Content) error {
	return swap(doc.Notifications, e.From, e.To)
}

// --- helpers ---

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func swap[T any](list []T, from, to int) error {
	if err := checkIndex(from, len(list)); err != nil {
		return err
	}
	if err := checkIndex(to, len(list)); err != nil {
		return err
	}
	if d := from - to; d != 1 && d != -1 {
		return ErrNotAdjacent
	}
	list[from], list[to] = list[to], list[from]
	return nil
}
