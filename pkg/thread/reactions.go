package thread

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Reactions holds the reaction aggregate for one article. Like Tree,
// it never patches locally: a successful toggle triggers a full
// re-fetch, and any failure leaves the cached aggregate untouched.
type Reactions struct {
	mu         sync.Mutex
	articleKey string
	gate       AuthGate
	backend    Backend
	aggregate  *Aggregate
}

func newReactions(articleKey string, gate AuthGate, backend Backend) *Reactions {
	return &Reactions{
		articleKey: articleKey,
		gate:       gate,
		backend:    backend,
		aggregate:  emptyAggregate(),
	}
}

// Aggregate returns the last successfully loaded aggregate. All-zero
// counts until Load has succeeded once.
func (r *Reactions) Aggregate() *Aggregate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aggregate
}

// Load fetches the current counts and the visitor's own reactions.
func (r *Reactions) Load(ctx context.Context) error {
	agg, err := r.backend.ListReactions(ctx, r.articleKey)
	if err != nil {
		return fmt.Errorf("loading reactions: %w", err)
	}
	r.mu.Lock()
	r.aggregate = agg
	r.mu.Unlock()
	return nil
}

// Toggle flips the visitor's reaction of the given kind and resyncs.
// Unknown kinds fail validation before any network traffic; anonymous
// visitors get an authentication prompt instead of a request.
func (r *Reactions) Toggle(ctx context.Context, kind Kind) error {
	if !ValidKind(kind) {
		return fmt.Errorf("%w: unknown reaction kind %q", ErrValidation, kind)
	}
	if !r.gate.IsAuthenticated() {
		r.gate.RequestAuthentication()
		return fmt.Errorf("%w: sign in to react", ErrUnauthorized)
	}
	if err := r.backend.ToggleReaction(ctx, r.articleKey, kind); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			r.gate.RequestAuthentication()
		}
		return err
	}
	return r.Load(ctx)
}
