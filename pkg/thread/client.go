// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package thread

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the current bearer token, or "" when the
// visitor is anonymous. Called on every request so a fresh login is
// picked up without rebuilding the client.
type TokenSource func() string

// Client talks to a talkpress backend over HTTP. It implements Backend.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// NewClient builds a Client for the given API base URL, e.g.
// "https://example.com/api". token may be nil for read-only use.
func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		token:   token,
	}
}

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrTransient, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	msg := eb.Error
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("%w: %s", statusError(resp.StatusCode), msg)
}

// statusError maps an HTTP status onto the package's sentinel errors.
func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrTransient
	}
}

func (c *Client) ListComments(ctx context.Context, articleKey string) ([]Comment, error) {
	var out struct {
		Comments []Comment `json:"comments"`
	}
	path := "/articles/" + url.PathEscape(articleKey) + "/comments"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) CreateComment(ctx context.Context, articleKey, content string, parentID *string) (*Comment, error) {
	body := struct {
		Content  string  `json:"content"`
		ParentID *string `json:"parent_id,omitempty"`
	}{Content: content, ParentID: parentID}

	var out Comment
	path := "/articles/" + url.PathEscape(articleKey) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*Comment, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	var out Comment
	path := "/comments/" + url.PathEscape(commentID)
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	path := "/comments/" + url.PathEscape(commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ListReactions(ctx context.Context, articleKey string) (*Aggregate, error) {
	var out Aggregate
	path := "/articles/" + url.PathEscape(articleKey) + "/reactions"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Counts == nil {
		out.Counts = emptyAggregate().Counts
	}
	return &out, nil
}

func (c *Client) ToggleReaction(ctx context.Context, articleKey string, kind Kind) error {
	path := "/articles/" + url.PathEscape(articleKey) + "/reactions/" + url.PathEscape(string(kind)) + "/toggle"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
