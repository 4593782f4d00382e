// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind is one of the fixed reaction types an article can receive.
type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionLove       ReactionKind = "love"
	ReactionCelebrate  ReactionKind = "celebrate"
	ReactionInsightful ReactionKind = "insightful"
)

// ReactionKinds lists every valid kind in display order.
var ReactionKinds = []ReactionKind{
	ReactionLike, ReactionLove, ReactionCelebrate, ReactionInsightful,
}

// ValidReactionKind reports whether s names a known reaction kind.
func ValidReactionKind(s string) bool {
	for _, k := range ReactionKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Reaction is one user's reaction of one kind on one article. The table
// has a composite primary key (article_id, user_id, kind), so a user can
// hold each kind at most once per article.
type Reaction struct {
	ArticleID uuid.UUID    `json:"article_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Kind      ReactionKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactionSummary is the per-article aggregate served by the reactions
// endpoint: total counts per kind plus the requesting user's own
// membership (empty for anonymous requests). Counts come straight from
// the database; clients must never derive them locally.
type ReactionSummary struct {
	Summary       map[ReactionKind]int `json:"summary"`
	UserReactions []ReactionKind       `json:"user_reactions"`
}

// NewReactionSummary returns a summary with every kind present at zero,
// so the wire format always carries the full closed set.
func NewReactionSummary() *ReactionSummary {
	s := &ReactionSummary{
		Summary:       make(map[ReactionKind]int, len(ReactionKinds)),
		UserReactions: []ReactionKind{},
	}
	for _, k := range ReactionKinds {
		s.Summary[k] = 0
	}
	return s
}
