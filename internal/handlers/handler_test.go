// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"talkpress/internal/cache"
	"talkpress/internal/database"
	"talkpress/internal/middleware"
	"talkpress/internal/models"
	"talkpress/internal/store"
	"talkpress/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "talkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "talkpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test token and cache keys.
		for _, pattern := range []string{"token:*", "reactions:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Tokens     *token.Store
	Users      *store.UserStore
	Articles   *store.ArticleStore
	CommentSt  *store.CommentStore
	ReactionSt *store.ReactionStore
	Aggregates *cache.AggregateCache
	Auth       *Auth
	Comments   *Comments
	Reactions  *Reactions
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	tokens := token.NewStore(vk)
	users := store.NewUserStore(db)
	articles := store.NewArticleStore(db)
	comments := store.NewCommentStore(db)
	reactions := store.NewReactionStore(db)
	aggregates := cache.NewAggregateCache(vk, 1*time.Minute)

	return &testEnv{
		DB:         db,
		Valkey:     vk,
		Tokens:     tokens,
		Users:      users,
		Articles:   articles,
		CommentSt:  comments,
		ReactionSt: reactions,
		Aggregates: aggregates,
		Auth:       NewAuth(tokens, users),
		Comments:   NewComments(comments, articles),
		Reactions:  NewReactions(reactions, articles, aggregates),
	}
}

// testUser creates a throwaway user and removes it after the test.
func testUser(t *testing.T, env *testEnv, displayName string) *models.User {
	t.Helper()
	email := "handler-" + uuid.NewString() + "@test.local"
	u, err := env.Users.Create(email, "password", displayName)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testArticle creates a throwaway article owned by authorID.
func testArticle(t *testing.T, env *testEnv, authorID uuid.UUID) *models.Article {
	t.Helper()
	slug := "handler-article-" + uuid.NewString()
	a, err := env.Articles.Create(slug, "Test Article", authorID)
	if err != nil {
		t.Fatalf("creating test article: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM articles WHERE id = $1", a.ID)
	})
	return a
}

// principalFor builds the context principal a logged-in request carries.
func principalFor(u *models.User) *token.Principal {
	return &token.Principal{
		UserID:      u.ID,
		DisplayName: u.DisplayName,
		Avatar:      u.AvatarURL,
	}
}

// withURLParam adds a chi URL parameter to a request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// withPrincipal attaches an authenticated principal to a request, the way
// the LoadPrincipal middleware would.
func withPrincipal(r *http.Request, p *token.Principal) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.PrincipalKey, p)
	return r.WithContext(ctx)
}
