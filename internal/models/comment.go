// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a single comment row. ParentID is nil for top-level
// comments; replies reference their parent through it. Deleting a comment
// cascades to its whole subtree at the database level.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	ArticleID uuid.UUID  `json:"article_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CommentAuthor is the author snapshot embedded in API responses so
// clients never join against the users table themselves.
type CommentAuthor struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar,omitempty"`
	Slug   *string   `json:"slug,omitempty"`
}

// CommentNode is one comment plus its ordered replies, as served by the
// comments listing endpoint. Replies are nested recursively; insertion
// order (created_at ascending) is preserved at every level.
type CommentNode struct {
	ID              uuid.UUID     `json:"id"`
	Content         string        `json:"content"`
	Author          CommentAuthor `json:"author"`
	IsArticleAuthor bool          `json:"is_article_author"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Replies         []CommentNode `json:"replies"`
}
