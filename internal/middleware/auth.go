// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"talkpress/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// PrincipalKey is the context key for the authenticated principal.
	PrincipalKey contextKey = "principal"

	// TokenKey is the context key for the raw bearer token (used by logout).
	TokenKey contextKey = "bearer_token"
)

// LoadPrincipal resolves the Authorization bearer token against Valkey and
// stores the principal in the request context. Downstream handlers access
// it via PrincipalFromCtx(). This middleware does NOT enforce
// authentication — requests without a valid token pass through anonymous.
func LoadPrincipal(tokens *token.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := tokens.Resolve(r.Context(), tok)
			if err != nil {
				// Valkey trouble — treat as unauthenticated rather than
				// failing public reads.
				next.ServeHTTP(w, r)
				return
			}

			if p != nil {
				ctx := context.WithValue(r.Context(), PrincipalKey, p)
				ctx = context.WithValue(ctx, TokenKey, tok)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a resolved principal. The JSON
// body mirrors the error taxonomy clients match on: a 401 means "present
// a credential", whether the token was absent or expired.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PrincipalFromCtx extracts the principal from the request context.
// Returns nil if the request is anonymous.
func PrincipalFromCtx(ctx context.Context) *token.Principal {
	p, _ := ctx.Value(PrincipalKey).(*token.Principal)
	return p
}

// BearerFromCtx returns the raw bearer token for the request, or "".
func BearerFromCtx(ctx context.Context) string {
	tok, _ := ctx.Value(TokenKey).(string)
	return tok
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
