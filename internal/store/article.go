// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"talkpress/internal/models"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// FindBySlug retrieves an article by its public slug. Returns nil if not found.
func (s *ArticleStore) FindBySlug(slug string) (*models.Article, error) {
	a := &models.Article{}
	err := s.db.QueryRow(`
		SELECT id, slug, title, author_id, created_at
		FROM articles WHERE slug = $1
	`, slug).Scan(&a.ID, &a.Slug, &a.Title, &a.AuthorID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// Create inserts a new article and returns it with the generated ID.
func (s *ArticleStore) Create(slug, title string, authorID uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := s.db.QueryRow(`
		INSERT INTO articles (slug, title, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, slug, title, author_id, created_at
	`, slug, title, authorID).Scan(&a.ID, &a.Slug, &a.Title, &a.AuthorID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// Delete removes an article by ID. Comments and reactions cascade.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
