// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds one operator's editing session: login, the working
// copy and its pristine snapshot, save feedback, reset and the exit guard.
//
// The working copy is never mutated in place. Every edit is applied to a
// fresh clone which then replaces it, and the pristine snapshot only moves
// on load and after a successful save.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"linkpage/internal/models"
)

// SaveState is the save feedback shown to the operator.
type SaveState string

const (
	StateIdle    SaveState = "idle"
	StateSaving  SaveState = "saving"
	StateSuccess SaveState = "success"
	StateError   SaveState = "error"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotLoaded        = errors.New("no document loaded")
	ErrSaveInProgress   = errors.New("save already in progress")
	ErrNothingToReset   = errors.New("no unsaved changes")
	ErrResetDeclined    = errors.New("reset not confirmed")
	ErrUnsavedChanges   = errors.New("unsaved changes would be lost")
)

// ExitMessage is the warning shown when leaving with unsaved changes.
const ExitMessage = "Masz niezapisane zmiany. Czy na pewno chcesz wyjść?"

// API is the content API as seen by the editor.
type API interface {
	CheckPassword(ctx context.Context, password string) error
	Fetch(ctx context.Context) (*models.Content, error)
	Save(ctx context.Context, password string, doc *models.Content) error
}

// ToastKind classifies a transient notice.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a short-lived notice for the operator.
type Toast struct {
	Kind    ToastKind
	Message string
	At      time.Time
}

type options struct {
	feedbackInterval time.Duration
	toastTTL         time.Duration
	now              func() time.Time
	logger           *slog.Logger
}

// Option configures a Session.
type Option func(*options)

// WithFeedbackInterval sets how long success and error stay visible before
// the save state returns to idle.
func WithFeedbackInterval(d time.Duration) Option {
	return func(o *options) { o.feedbackInterval = d }
}

// WithToastTTL sets how long a toast stays visible.
func WithToastTTL(d time.Duration) Option {
	return func(o *options) { o.toastTTL = d }
}

// WithClock overrides the time source used for save timestamps and toasts.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used for save and load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session is one operator's editing session. It is safe for concurrent use;
// network calls run without holding the lock.
type Session struct {
	api  API
	opts options

	mu            sync.Mutex
	password      string
	authenticated bool
	authError     bool
	loading       bool
	working       *models.Content
	pristine      *models.Content
	saveState     SaveState
	stateGen      uint64
	toast         *Toast
	toastGen      uint64
	lastSaved     time.Time
}

// New creates a session against api.
func New(api API, opts ...Option) *Session {
	o := options{
		feedbackInterval: 3 * time.Second,
		toastTTL:         4 * time.Second,
		now:              time.Now,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{api: api, opts: o, saveState: StateIdle}
}

// Login checks password against the API. On success the session becomes
// authenticated and the document is loaded; a failed load is reported
// through a toast and does not undo the login. On failure the auth error
// flag is set and the session stays logged out. Logging in again while
// edits are unsaved fails with ErrUnsavedChanges and keeps them.
func (s *Session) Login(ctx context.Context, password string) error {
	s.mu.Lock()
	if s.authenticated && s.dirtyLocked() {
		s.mu.Unlock()
		return ErrUnsavedChanges
	}
	s.authError = false
	s.mu.Unlock()

	if err := s.api.CheckPassword(ctx, password); err != nil {
		s.mu.Lock()
		s.authError = true
		s.mu.Unlock()
		s.opts.logger.Debug("login rejected", "error", err)
		if errors.Is(err, models.ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}

	s.mu.Lock()
	s.authenticated = true
	s.password = password
	s.mu.Unlock()

	_ = s.Load(ctx)
	return nil
}

// Load fetches the document and makes it both the working copy and the
// pristine snapshot. Failures raise an error toast and keep the session
// authenticated so the operator can retry.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.loading = true
	s.mu.Unlock()

	doc, err := s.api.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.opts.logger.Warn("content load failed", "error", err)
		s.showToastLocked(ToastError, "Nie udało się wczytać treści")
		if errors.Is(err, models.ErrLoad) {
			return err
		}
		return fmt.Errorf("%w: %w", models.ErrLoad, err)
	}
	doc.Normalize()
	s.working = doc.Clone()
	s.pristine = doc.Clone()
	return nil
}

// Apply runs edit against a clone of the working copy and swaps the clone
// in. A failing edit leaves the working copy as it was.
func (s *Session) Apply(edit Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working == nil {
		return ErrNotLoaded
	}
	next := s.working.Clone()
	if err := edit.apply(next); err != nil {
		return err
	}
	s.working = next
	return nil
}

// Save submits the whole working copy. Only one save may be in flight. On
// success the submitted copy becomes the pristine snapshot; on failure the
// working copy is kept so the operator can retry. Either way the save state
// returns to idle after the feedback interval.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.working == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if s.saveState == StateSaving {
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	submitted := s.working.Clone()
	password := s.password
	s.setStateLocked(StateSaving)
	s.mu.Unlock()

	err := s.api.Save(ctx, password, submitted)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logSaveFailure(err)
		s.setStateLocked(StateError)
		s.showToastLocked(ToastError, "Błąd zapisu")
		return err
	}
	s.pristine = submitted
	s.lastSaved = s.opts.now()
	s.setStateLocked(StateSuccess)
	s.showToastLocked(ToastSuccess, "Zapisano")
	return nil
}

// Reset discards unsaved edits after confirm approves. confirm runs
// without the session lock held.
func (s *Session) Reset(confirm func() bool) error {
	if !s.HasUnsavedChanges() {
		return ErrNothingToReset
	}
	if confirm == nil || !confirm() {
		return ErrResetDeclined
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pristine == nil {
		return ErrNotLoaded
	}
	s.working = s.pristine.Clone()
	return nil
}

// HasUnsavedChanges reports whether the working copy differs from the
// pristine snapshot. It is computed on every call.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyLocked()
}

// ExitWarning returns the message to show before leaving, and whether
// leaving should be confirmed at all.
func (s *Session) ExitWarning() (string, bool) {
	if s.HasUnsavedChanges() {
		return ExitMessage, true
	}
	return "", false
}

// SaveState returns the current save feedback state.
func (s *Session) SaveState() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveState
}

// Toast returns the visible toast, if any.
func (s *Session) Toast() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toast == nil {
		return Toast{}, false
	}
	return *s.toast, true
}

// LastSaved returns when the last successful save finished, or the zero
// time if nothing was saved in this session.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Authenticated reports whether Login succeeded.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// AuthError reports whether the last login attempt failed.
func (s *Session) AuthError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authError
}

// Loading reports whether a document fetch is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Working returns a copy of the working document, or nil before load.
func (s *Session) Working() *models.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Pristine returns a copy of the last loaded or saved document.
func (s *Session) Pristine() *models.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pristine.Clone()
}

func (s *Session) dirtyLocked() bool {
	return s.working != nil && s.pristine != nil && !s.working.Equal(s.pristine)
}

// setStateLocked moves the save state and, for success and error, schedules
// the return to idle. A newer transition cancels an older pending revert.
func (s *Session) setStateLocked(state SaveState) {
	s.stateGen++
	s.saveState = state
	if state != StateSuccess && state != StateError {
		return
	}
	gen := s.stateGen
	time.AfterFunc(s.opts.feedbackInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.stateGen == gen {
			s.saveState = StateIdle
		}
	})
}

func (s *Session) showToastLocked(kind ToastKind, msg string) {
	s.toastGen++
	s.toast = &Toast{Kind: kind, Message: msg, At: s.opts.now()}
	gen := s.toastGen
	time.AfterFunc(s.opts.toastTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.toastGen == gen {
			s.toast = nil
		}
	})
}

// logSaveFailure records which kind of failure hit the save. The operator
// sees the same generic message for all of them.
func (s *Session) logSaveFailure(err error) {
	kind := "unknown"
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		kind = "unauthorized"
	case errors.Is(err, models.ErrInvalidStructure):
		kind = "invalid_structure"
	case errors.Is(err, models.ErrPersistence):
		kind = "persistence"
	case errors.Is(err, models.ErrNetwork):
		kind = "network"
	}
	s.opts.logger.Warn("content save failed", "kind", kind, "error", err)
}
