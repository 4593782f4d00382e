// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talkpress/internal/cache"
	"talkpress/internal/middleware"
	"talkpress/internal/models"
	"talkpress/internal/store"
)

// Reactions groups the reaction HTTP handlers.
type Reactions struct {
	reactionStore *store.ReactionStore
	articleStore  *store.ArticleStore
	aggregates    *cache.AggregateCache
}

// NewReactions creates a new Reactions handler group. aggregates may be
// nil, in which case every summary hits the database.
func NewReactions(reactionStore *store.ReactionStore, articleStore *store.ArticleStore, aggregates *cache.AggregateCache) *Reactions {
	return &Reactions{
		reactionStore: reactionStore,
		articleStore:  articleStore,
		aggregates:    aggregates,
	}
}

// Get returns the reaction aggregate for an article. Works for anonymous
// requests; user_reactions is filled in only for a valid bearer.
func (h *Reactions) Get(w http.ResponseWriter, r *http.Request) {
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

	principal := middleware.PrincipalFromCtx(r.Context())

	// Counts for anonymous readers can come from the cache; a summary
	// with user membership always reads the database.
	if principal == nil && h.aggregates != nil {
		if counts := h.aggregates.Get(r.Context(), article.Slug); counts != nil {
			summary := models.NewReactionSummary()
			summary.Summary = counts
			writeJSON(w, http.StatusOK, summary)
			return
		}
	}

	var userID *uuid.UUID
	if principal != nil {
		userID = &principal.UserID
	}

	summary, err := h.reactionStore.Summary(article.ID, userID)
	if err != nil {
		slog.Error("reaction summary failed", "article", article.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	if principal == nil && h.aggregates != nil {
		h.aggregates.Set(r.Context(), article.Slug, summary.Summary)
	}

	writeJSON(w, http.StatusOK, summary)
}

// Toggle applies or removes one reaction kind for the authenticated
// principal. The backend owns the toggle semantics; clients re-fetch the
// aggregate afterwards instead of predicting the result.
func (h *Reactions) Toggle(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	kind := chi.URLParam(r, "kind")
	if !models.ValidReactionKind(kind) {
		writeError(w, http.StatusUnprocessableEntity, "Unknown reaction kind.")
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

	if _, err := h.reactionStore.Toggle(article.ID, principal.UserID, models.ReactionKind(kind)); err != nil {
		slog.Error("reaction toggle failed", "article", article.Slug, "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	// Cached counts are stale the moment a toggle lands.
	if h.aggregates != nil {
		h.aggregates.Invalidate(r.Context(), article.Slug)
	}

	w.WriteHeader(http.StatusNoContent)
}
