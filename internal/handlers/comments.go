// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talkpress/internal/middleware"
	"talkpress/internal/models"
	"talkpress/internal/store"
)

// Comments groups the comment HTTP handlers.
type Comments struct {
	commentStore *store.CommentStore
	articleStore *store.ArticleStore
}

// NewComments creates a new Comments handler group.
func NewComments(commentStore *store.CommentStore, articleStore *store.ArticleStore) *Comments {
	return &Comments{
		commentStore: commentStore,
		articleStore: articleStore,
	}
}

type createCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

type listCommentsResponse struct {
	Comments []models.CommentNode `json:"comments"`
	Count    int                  `json:"count"`
}

// List returns the full comment tree for an article, replies nested.
// Public — no credential required.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("article lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "Article not found.")
		return
	}

	tree, err := h.commentStore.ListThread(article.ID)
	if err != nil {
		slog.Error("comment listing failed", "article", article.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	total, err := h.commentStore.CountForArticle(article.ID)
	if err != nil {
		slog.Error("comment count failed", "article", article.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, listCommentsResponse{Comments: tree, Count: total})
}

// Create posts a new comment or reply on an article. Requires a bearer
// credential; the principal becomes the comment's author.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}

	if msg := validateComment(req.Content); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	article, err := h.articleStore.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("article lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "Article not found.")
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Invalid parent comment id.")
			return
		}

		parent, err := h.commentStore.FindByID(id)
		if err != nil {
			slog.Error("parent lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
		if parent == nil {
			writeError(w, http.StatusNotFound, "Parent comment not found.")
			return
		}
		if parent.ArticleID != article.ID {
			writeError(w, http.StatusUnprocessableEntity, "Parent comment belongs to a different article.")
			return
		}
		parentID = &id
	}

	created, err := h.commentStore.Create(article.ID, principal.UserID, parentID, req.Content)
	if err != nil {
		slog.Error("comment create failed", "article", article.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update replaces a comment's content. Owner only — the database check
// is authoritative, not the client's idea of ownership.
func (h *Comments) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Comment not found.")
		return
	}

	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}

	if msg := validateComment(req.Content); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	existing, err := h.commentStore.FindByID(id)
	if err != nil {
		slog.Error("comment lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Comment not found.")
		return
	}

	updated, err := h.commentStore.Update(id, principal.UserID, req.Content)
	if err != nil {
		slog.Error("comment update failed", "comment", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if updated == nil {
		// The comment exists but the WHERE author_id clause matched nothing.
		writeError(w, http.StatusForbidden, "You can only edit your own comments.")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a comment and, via the database cascade, its whole
// reply subtree. Owner only.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Comment not found.")
		return
	}

	existing, err := h.commentStore.FindByID(id)
	if err != nil {
		slog.Error("comment lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Comment not found.")
		return
	}

	deleted, err := h.commentStore.Delete(id, principal.UserID)
	if err != nil {
		slog.Error("comment delete failed", "comment", id, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if !deleted {
		writeError(w, http.StatusForbidden, "You can only delete your own comments.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
