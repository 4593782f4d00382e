package thread

import "context"

// Backend is the remote comments/reactions service this package
// consumes. Client implements it over HTTP; tests substitute in-memory
// fakes. Every method maps failures onto the package's error taxonomy.
type Backend interface {
	// ListComments returns the full comment forest for an article,
	// replies nested, in the backend's canonical order.
	ListComments(ctx context.Context, articleKey string) ([]Comment, error)

	// CreateComment posts a new comment. parentID nil means top-level.
	// Requires a credential; the created comment carries every
	// server-assigned field.
	CreateComment(ctx context.Context, articleKey, content string, parentID *string) (*Comment, error)

	// UpdateComment replaces a comment's content. Owner only.
	UpdateComment(ctx context.Context, commentID, content string) (*Comment, error)

	// DeleteComment removes a comment and its reply subtree. Owner only.
	DeleteComment(ctx context.Context, commentID string) error

	// ListReactions returns the article's aggregate. Membership is
	// filled in only when a credential accompanies the request.
	ListReactions(ctx context.Context, articleKey string) (*Aggregate, error)

	// ToggleReaction applies the kind if absent or removes it if held.
	// The backend owns the semantics; the caller re-fetches afterwards.
	ToggleReaction(ctx context.Context, articleKey string, kind Kind) error
}
