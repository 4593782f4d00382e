// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// All rights reserved. See LICENSE for details.

package thread

import (
	"context"
	"errors"
	"fmt"
)

// composerKey is the node-state key for the article-level composer,
// which has no comment id of its own.
const composerKey = ""

// Thread is the entry point for one article's discussion: the comment
// forest, the reaction aggregate, and the per-node interaction state,
// behind a single handle.
type Thread struct {
	articleKey string
	gate       AuthGate
	backend    Backend
	tree       *Tree
	reactions  *Reactions
	nodes      *NodeStates
}

// New builds a Thread for an article. Nothing is fetched until
// Initialize or Refresh is called.
func New(articleKey string, gate AuthGate, backend Backend) *Thread {
	return &Thread{
		articleKey: articleKey,
		gate:       gate,
		backend:    backend,
		tree:       newTree(articleKey, gate, backend),
		reactions:  newReactions(articleKey, gate, backend),
		nodes:      newNodeStates(gate),
	}
}

// Initialize loads the comment thread and the reaction aggregate.
// Partial failure is reported but does not roll back the half that
// loaded.
func (t *Thread) Initialize(ctx context.Context) error {
	return errors.Join(t.tree.Load(ctx), t.reactions.Load(ctx))
}

// Refresh re-fetches both halves. A reloaded thread starts every node
// back at viewing: the forms referred to the snapshot that was replaced.
func (t *Thread) Refresh(ctx context.Context) error {
	err := errors.Join(t.tree.Load(ctx), t.reactions.Load(ctx))
	if err == nil {
		t.nodes.ResetAll()
	}
	return err
}

// Comments returns the current comment forest.
func (t *Thread) Comments() []Comment { return t.tree.Comments() }

// CommentCount returns the total number of comments, replies included.
func (t *Thread) CommentCount() int { return t.tree.Count() }

// Aggregate returns the current reaction aggregate.
func (t *Thread) Aggregate() *Aggregate { return t.reactions.Aggregate() }

// Nodes exposes the per-comment interaction state.
func (t *Thread) Nodes() *NodeStates { return t.nodes }

// Tree exposes the underlying comment store for callers that manage
// their own interaction state.
func (t *Thread) Tree() *Tree { return t.tree }

// Reactions exposes the underlying reaction store.
func (t *Thread) Reactions() *Reactions { return t.reactions }

// SubmitComment posts a top-level comment. On success every open form
// is closed and the thread reflects the server's state.
func (t *Thread) SubmitComment(ctx context.Context, content string) error {
	return t.mutate(ctx, composerKey, func(ctx context.Context) error {
		return t.tree.Create(ctx, content, nil)
	})
}

// SubmitReply posts a reply under parentID.
func (t *Thread) SubmitReply(ctx context.Context, parentID, content string) error {
	return t.mutate(ctx, parentID, func(ctx context.Context) error {
		pid := parentID
		return t.tree.Create(ctx, content, &pid)
	})
}

// SaveEdit replaces a comment's content.
func (t *Thread) SaveEdit(ctx context.Context, commentID, content string) error {
	return t.mutate(ctx, commentID, func(ctx context.Context) error {
		return t.tree.Update(ctx, commentID, content)
	})
}

// Remove deletes a comment and its replies.
func (t *Thread) Remove(ctx context.Context, commentID string) error {
	return t.mutate(ctx, commentID, func(ctx context.Context) error {
		return t.tree.Delete(ctx, commentID)
	})
}

// ToggleReaction flips the visitor's reaction of the given kind.
func (t *Thread) ToggleReaction(ctx context.Context, kind Kind) error {
	if !t.nodes.beginOp(composerKey) {
		return fmt.Errorf("%w: reaction already in flight", ErrPending)
	}
	defer t.nodes.endOp(composerKey)
	return t.reactions.Toggle(ctx, kind)
}

// mutate guards a comment mutation with the node's busy flag and, on
// success, resets all interaction state to viewing.
func (t *Thread) mutate(ctx context.Context, nodeID string, op func(context.Context) error) error {
	if !t.nodes.beginOp(nodeID) {
		return fmt.Errorf("%w: operation already in flight", ErrPending)
	}
	defer t.nodes.endOp(nodeID)

	if err := op(ctx); err != nil {
		return err
	}
	t.nodes.ResetAll()
	return nil
}
