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

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// FindByID retrieves a comment by its UUID. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT id, article_id, author_id, parent_id, content, created_at, updated_at
		FROM comments WHERE id = $1
	`, id).Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it with the generated ID and
// timestamps. parentID is nil for top-level comments.
func (s *CommentStore) Create(articleID, authorID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (article_id, author_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, article_id, author_id, parent_id, content, created_at, updated_at
	`, articleID, authorID, parentID, content).Scan(
		&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// Update replaces a comment's content. The WHERE clause includes the
// author, so a non-owner update matches zero rows; callers distinguish
// "not found" from "not yours" by looking the comment up first.
func (s *CommentStore) Update(id, authorID uuid.UUID, content string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		UPDATE comments SET content = $1, updated_at = NOW()
		WHERE id = $2 AND author_id = $3
		RETURNING id, article_id, author_id, parent_id, content, created_at, updated_at
	`, content, id, authorID).Scan(
		&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment owned by authorID. Replies cascade at the
// database level. Returns true when a row was actually deleted.
func (s *CommentStore) Delete(id, authorID uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment rows: %w", err)
	}
	return n > 0, nil
}

// commentRow is one joined row of the threaded listing query.
type commentRow struct {
	node     models.CommentNode
	parentID *uuid.UUID
	authorID uuid.UUID
}

// ListThread returns the full comment forest for an article, replies
// nested under their parents, insertion order preserved at every level.
// One query fetches every comment with its author snapshot; the tree is
// assembled in a single pass over a parent_id index. Rows arrive ordered
// by created_at, so a parent always precedes its replies.
func (s *CommentStore) ListThread(articleID uuid.UUID) ([]models.CommentNode, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.parent_id, c.content, c.created_at, c.updated_at,
		       u.id, u.display_name, u.avatar_url, u.profile_slug,
		       (u.id = a.author_id) AS is_article_author
		FROM comments c
		JOIN users u ON u.id = c.author_id
		JOIN articles a ON a.id = c.article_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comment thread: %w", err)
	}
	defer rows.Close()

	var ordered []commentRow
	for rows.Next() {
		var r commentRow
		if err := rows.Scan(
			&r.node.ID, &r.parentID, &r.node.Content, &r.node.CreatedAt, &r.node.UpdatedAt,
			&r.authorID, &r.node.Author.Name, &r.node.Author.Avatar, &r.node.Author.Slug,
			&r.node.IsArticleAuthor,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		r.node.Author.ID = r.authorID
		r.node.Replies = []models.CommentNode{}
		ordered = append(ordered, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comment thread rows: %w", err)
	}

	// Index nodes by id, then attach each to its parent's reply list.
	// Appending to the slices held in the index keeps pointers stable
	// because every node's replies slice is built before being copied out.
	byID := make(map[uuid.UUID]*models.CommentNode, len(ordered))
	for i := range ordered {
		byID[ordered[i].node.ID] = &ordered[i].node
	}

	var roots []models.CommentNode
	// Walk in reverse so children are complete before their parent is
	// copied into the parent's (or the root) slice.
	for i := len(ordered) - 1; i >= 0; i-- {
		r := &ordered[i]
		if r.parentID == nil {
			continue
		}
		parent, ok := byID[*r.parentID]
		if !ok {
			// Orphan row (parent deleted mid-query); surface at top level
			// rather than dropping a user's comment.
			r.parentID = nil
			continue
		}
		// Prepend to keep created_at order: reverse walk visits later
		// replies first.
		parent.Replies = append([]models.CommentNode{r.node}, parent.Replies...)
	}
	for i := range ordered {
		if ordered[i].parentID == nil {
			roots = append(roots, ordered[i].node)
		}
	}
	if roots == nil {
		roots = []models.CommentNode{}
	}
	return roots, nil
}

// CountForArticle returns the total number of comments on an article,
// replies included.
func (s *CommentStore) CountForArticle(articleID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE article_id = $1`, articleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
