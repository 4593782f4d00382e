// Package token provides Valkey-backed bearer token management for the
// comments API. Tokens are opaque random identifiers sent in the
// Authorization header and stored as JSON in Valkey with automatic TTL expiry.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a token lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces token keys in Valkey to avoid collisions.
	keyPrefix = "token:"

	// idLength is the byte length of the random token (32 bytes = 64 hex chars).
	idLength = 32
)

// Principal holds the identity payload stored against a token. It is the
// author snapshot handed to handlers for every authenticated request.
type Principal struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Avatar      *string   `json:"avatar,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Store manages bearer token lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a token store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
	}
}

// Issue generates a new bearer token for the principal and stores it in
// Valkey. Returns the token string the client must present.
func (s *Store) Issue(ctx context.Context, p *Principal) (string, error) {
	tok, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("token issue: %w", err)
	}

	p.IssuedAt = time.Now()

	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("token marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+tok, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}

	return tok, nil
}

// Resolve looks up the principal for a bearer token. Returns nil if the
// token is unknown or expired (not an error).
func (s *Store) Resolve(ctx context.Context, tok string) (*Principal, error) {
	if tok == "" {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+tok).Bytes()
	if err == redis.Nil {
		return nil, nil // Token expired or never issued
	}
	if err != nil {
		return nil, fmt.Errorf("token get: %w", err)
	}

	var p Principal
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("token unmarshal: %w", err)
	}

	return &p, nil
}

// Revoke removes a token from Valkey. Revoking an unknown token is a no-op.
func (s *Store) Revoke(ctx context.Context, tok string) error {
	if tok == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+tok).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

// generateToken creates a cryptographically random bearer token.
func generateToken() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
