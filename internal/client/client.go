// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client talks to the content API over HTTP. Every failure is
// mapped onto the shared error taxonomy in the models package so callers
// can branch with errors.Is.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"linkpage/internal/auth"
	"linkpage/internal/models"
)

// contentPath is the API route for reading and writing the document.
const contentPath = "/api/content"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 2 << 20

// Client is a content API client bound to one server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL. A nil httpClient gets a
// default client with a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckPassword validates password with an empty-object write, which the
// server acknowledges without touching the store.
func (c *Client) CheckPassword(ctx context.Context, password string) error {
	status, body, err := c.do(ctx, http.MethodPost, password, []byte("{}"))
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		var ack struct {
			Authenticated bool `json:"authenticated"`
		}
		if err := json.Unmarshal(body, &ack); err != nil || !ack.Authenticated {
			return fmt.Errorf("%w: unexpected probe response", models.ErrUnauthorized)
		}
		return nil
	default:
		return statusError(status, body)
	}
}

// Fetch reads the current document. A missing notifications list comes
// back as an empty one.
func (c *Client) Fetch(ctx context.Context) (*models.Content, error) {
	status, body, err := c.do(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", models.ErrLoad, status)
	}
	doc, err := models.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrLoad, err)
	}
	return doc, nil
}

// Save replaces the stored document with doc.
func (c *Client) Save(ctx context.Context, password string, doc *models.Content) error {
	payload, err := models.Encode(doc)
	if err != nil {
		return err
	}
	status, body, err := c.do(ctx, http.MethodPost, password, payload)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	return statusError(status, body)
}

// do sends one request to the content route. Transport failures are
// reported as ErrNetwork.
func (c *Client) do(ctx context.Context, method, password string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+contentPath, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("content request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if password != "" {
		req.Header.Set(auth.HeaderName, password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %w", models.ErrNetwork, err)
	}
	return resp.StatusCode, body, nil
}

// statusError maps a non-200 API response onto the error taxonomy.
func statusError(status int, body []byte) error {
	msg := errorMessage(body)
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", models.ErrUnauthorized, msg)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", models.ErrInvalidStructure, msg)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", models.ErrPersistence, msg)
	default:
		return fmt.Errorf("content API error (status %d): %s", status, msg)
	}
}

// errorMessage extracts the "error" field of a JSON error body, falling
// back to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
