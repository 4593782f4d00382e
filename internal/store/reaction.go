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

// ReactionStore handles all reaction-related database operations.
type ReactionStore struct {
	db *sql.DB
}

// NewReactionStore creates a new ReactionStore with the given database connection.
func NewReactionStore(db *sql.DB) *ReactionStore {
	return &ReactionStore{db: db}
}

// Toggle applies the given reaction kind if the user does not hold it on
// the article, or removes it if they do. Delete-then-insert in one
// transaction keeps the operation atomic under concurrent toggles; the
// composite primary key guarantees at most one row per (article, user,
// kind). Returns true when the reaction is held after the call.
func (s *ReactionStore) Toggle(articleID, userID uuid.UUID, kind models.ReactionKind) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("toggle reaction begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM reactions WHERE article_id = $1 AND user_id = $2 AND kind = $3
	`, articleID, userID, kind)
	if err != nil {
		return false, fmt.Errorf("toggle reaction delete: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle reaction rows: %w", err)
	}

	held := false
	if deleted == 0 {
		// Nothing to remove — the user is applying the reaction.
		_, err = tx.Exec(`
			INSERT INTO reactions (article_id, user_id, kind)
			VALUES ($1, $2, $3)
			ON CONFLICT (article_id, user_id, kind) DO NOTHING
		`, articleID, userID, kind)
		if err != nil {
			return false, fmt.Errorf("toggle reaction insert: %w", err)
		}
		held = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("toggle reaction commit: %w", err)
	}
	return held, nil
}

// Summary returns the aggregate for an article: counts grouped by kind,
// every kind present even at zero. userID is optional; when set, the
// user's own membership is filled in.
func (s *ReactionStore) Summary(articleID uuid.UUID, userID *uuid.UUID) (*models.ReactionSummary, error) {
	summary := models.NewReactionSummary()

	rows, err := s.db.Query(`
		SELECT kind, COUNT(*) FROM reactions
		WHERE article_id = $1
		GROUP BY kind
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("reaction summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind models.ReactionKind
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan reaction count: %w", err)
		}
		summary.Summary[kind] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reaction summary rows: %w", err)
	}

	if userID != nil {
		own, err := s.userKinds(articleID, *userID)
		if err != nil {
			return nil, err
		}
		summary.UserReactions = own
	}

	return summary, nil
}

// userKinds lists the kinds one user holds on an article, in the closed
// set's display order.
func (s *ReactionStore) userKinds(articleID, userID uuid.UUID) ([]models.ReactionKind, error) {
	rows, err := s.db.Query(`
		SELECT kind FROM reactions
		WHERE article_id = $1 AND user_id = $2
	`, articleID, userID)
	if err != nil {
		return nil, fmt.Errorf("user reactions: %w", err)
	}
	defer rows.Close()

	held := make(map[models.ReactionKind]bool)
	for rows.Next() {
		var kind models.ReactionKind
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("scan user reaction: %w", err)
		}
		held[kind] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user reactions rows: %w", err)
	}

	kinds := []models.ReactionKind{}
	for _, k := range models.ReactionKinds {
		if held[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}
