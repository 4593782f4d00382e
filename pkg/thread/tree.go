// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// All rights reserved. See LICENSE for details.

package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const maxContentLen = 10_000

// Tree holds the comment forest for one article. Mutations never patch
// the local copy: after a successful write the whole thread is
// re-fetched so the snapshot always matches the server.
type Tree struct {
	mu         sync.Mutex
	articleKey string
	gate       AuthGate
	backend    Backend
	comments   []Comment
	loaded     bool
}

func newTree(articleKey string, gate AuthGate, backend Backend) *Tree {
	return &Tree{articleKey: articleKey, gate: gate, backend: backend}
}

// Comments returns the last successfully loaded forest. Empty until
// Load has succeeded once.
func (t *Tree) Comments() []Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.comments
}

// Loaded reports whether at least one Load has succeeded.
func (t *Tree) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// Count returns the total number of comments in the forest, replies
// included.
func (t *Tree) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return countComments(t.comments)
}

func countComments(cs []Comment) int {
	n := len(cs)
	for i := range cs {
		n += countComments(cs[i].Replies)
	}
	return n
}

// Load fetches the full thread. On failure the previous snapshot is
// kept untouched.
func (t *Tree) Load(ctx context.Context) error {
	comments, err := t.backend.ListComments(ctx, t.articleKey)
	if err != nil {
		return fmt.Errorf("loading comments: %w", err)
	}
	t.mu.Lock()
	t.comments = comments
	t.loaded = true
	t.mu.Unlock()
	return nil
}

// Create posts a new comment and resyncs. parentID nil means
// top-level. Content is validated and the visitor's credential checked
// before any network traffic.
func (t *Tree) Create(ctx context.Context, content string, parentID *string) error {
	if err := validateContent(content); err != nil {
		return err
	}
	if err := t.requireAuth(); err != nil {
		return err
	}
	if _, err := t.backend.CreateComment(ctx, t.articleKey, strings.TrimSpace(content), parentID); err != nil {
		return t.authError(err)
	}
	return t.Load(ctx)
}

// Update replaces a comment's content and resyncs. The server enforces
// ownership; a non-owner attempt surfaces as ErrForbidden and leaves
// the snapshot unchanged.
func (t *Tree) Update(ctx context.Context, commentID, content string) error {
	if err := validateContent(content); err != nil {
		return err
	}
	if err := t.requireAuth(); err != nil {
		return err
	}
	if _, err := t.backend.UpdateComment(ctx, commentID, strings.TrimSpace(content)); err != nil {
		return t.authError(err)
	}
	return t.Load(ctx)
}

// Delete removes a comment (and its replies, server-side) and resyncs.
func (t *Tree) Delete(ctx context.Context, commentID string) error {
	if err := t.requireAuth(); err != nil {
		return err
	}
	if err := t.backend.DeleteComment(ctx, commentID); err != nil {
		return t.authError(err)
	}
	return t.Load(ctx)
}

// Find walks the forest for a comment by id. Returns nil when absent.
func (t *Tree) Find(commentID string) *Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return findComment(t.comments, commentID)
}

func findComment(cs []Comment, id string) *Comment {
	for i := range cs {
		if cs[i].ID == id {
			c := cs[i]
			return &c
		}
		if found := findComment(cs[i].Replies, id); found != nil {
			return found
		}
	}
	return nil
}

func (t *Tree) requireAuth() error {
	if t.gate.IsAuthenticated() {
		return nil
	}
	t.gate.RequestAuthentication()
	return fmt.Errorf("%w: sign in to continue", ErrUnauthorized)
}

// authError re-raises the sign-in prompt when the backend rejects a
// credential the gate thought was valid (expired token).
func (t *Tree) authError(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		t.gate.RequestAuthentication()
	}
	return err
}

func validateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	}
	if len([]rune(trimmed)) > maxContentLen {
		return fmt.Errorf("%w: comment is too long", ErrValidation)
	}
	return nil
}
