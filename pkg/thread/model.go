// Package thread is the client core for article comment threads and
// reactions. It holds the comment forest and reaction aggregate for one
// article, performs gated mutations against a REST backend, and resyncs
// the whole cached state after every successful mutation instead of
// patching it locally. Per-node UI state (viewing/editing/replying)
// lives in a side table keyed by comment id, never on the comments
// themselves.
package thread

import "time"

// Kind is one of the fixed reaction types an article can receive.
type Kind string

const (
	KindLike       Kind = "like"
	KindLove       Kind = "love"
	KindCelebrate  Kind = "celebrate"
	KindInsightful Kind = "insightful"
)

// Kinds lists every valid reaction kind in display order.
var Kinds = []Kind{KindLike, KindLove, KindCelebrate, KindInsightful}

// ValidKind reports whether k names a known reaction kind.
func ValidKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Author is the snapshot of a comment's author embedded in the comment
// itself, so rendering never needs a second lookup.
type Author struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
	Slug   *string `json:"slug,omitempty"`
}

// Comment is one node of the comment forest. Every comment carries a
// server-assigned id; the tree never holds client-only placeholders.
// Replies preserve the backend's ordering and nest to unbounded depth;
// the backend guarantees the shape is acyclic and the client treats it
// as ground truth.
type Comment struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	Author          Author    `json:"author"`
	IsArticleAuthor bool      `json:"is_article_author"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Replies         []Comment `json:"replies"`
}

// Aggregate is the per-article reaction summary: authoritative counts
// per kind plus the current principal's own membership. Counts are
// whatever the backend last reported — the client never increments or
// decrements them itself.
type Aggregate struct {
	Counts        map[Kind]int `json:"summary"`
	UserReactions []Kind       `json:"user_reactions"`
}

// Has reports whether the current principal holds the given kind.
func (a *Aggregate) Has(k Kind) bool {
	for _, held := range a.UserReactions {
		if held == k {
			return true
		}
	}
	return false
}

// Count returns the total for one kind, zero for kinds never reported.
func (a *Aggregate) Count(k Kind) int {
	return a.Counts[k]
}

// emptyAggregate is the zero state shown before the first load: all
// kinds at zero, no membership.
func emptyAggregate() *Aggregate {
	counts := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		counts[k] = 0
	}
	return &Aggregate{Counts: counts, UserReactions: []Kind{}}
}
