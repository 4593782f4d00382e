// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// aggregate.go provides a Valkey-backed cache for per-article reaction
// count summaries. Only the anonymous part of the aggregate (the counts)
// is cached; per-user membership is always read from the database.
// Every toggle invalidates the article's entry, so cached counts are
// never served across a mutation.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"talkpress/internal/models"
)

const (
	// aggregateKeyPrefix is the Valkey key prefix for cached summaries.
	aggregateKeyPrefix = "reactions:"

	// DefaultAggregateTTL bounds staleness for anonymous readers even if
	// an invalidation is lost.
	DefaultAggregateTTL = 1 * time.Minute
)

// AggregateCache manages reaction count summaries in Valkey.
type AggregateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAggregateCache creates an aggregate cache backed by the given Valkey client.
func NewAggregateCache(client *redis.Client, ttl time.Duration) *AggregateCache {
	if ttl == 0 {
		ttl = DefaultAggregateTTL
	}
	return &AggregateCache{client: client, ttl: ttl}
}

// Get retrieves cached counts for an article slug. Returns nil on miss.
func (ac *AggregateCache) Get(ctx context.Context, slug string) map[models.ReactionKind]int {
	val, err := ac.client.Get(ctx, aggregateKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("aggregate cache get error", "slug", slug, "error", err)
		return nil
	}

	var counts map[models.ReactionKind]int
	if err := json.Unmarshal(val, &counts); err != nil {
		slog.Warn("aggregate cache decode error", "slug", slug, "error", err)
		return nil
	}
	return counts
}

// Set stores counts for an article slug with the configured TTL.
func (ac *AggregateCache) Set(ctx context.Context, slug string, counts map[models.ReactionKind]int) {
	payload, err := json.Marshal(counts)
	if err != nil {
		slog.Warn("aggregate cache encode error", "slug", slug, "error", err)
		return
	}
	if err := ac.client.Set(ctx, aggregateKeyPrefix+slug, payload, ac.ttl).Err(); err != nil {
		slog.Warn("aggregate cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes an article's cached counts. Called after every toggle.
func (ac *AggregateCache) Invalidate(ctx context.Context, slug string) {
	if err := ac.client.Del(ctx, aggregateKeyPrefix+slug).Err(); err != nil {
		slog.Warn("aggregate cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("aggregate cache invalidated", "slug", slug)
}
