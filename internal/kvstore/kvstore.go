// Package kvstore abstracts the external sorted-set store the sliding
// window rate limiter runs its admission pipeline against (spec C8),
// carrying over the exact ZREMRANGEBYSCORE / ZCARD / ZADD / EXPIRE pipeline
// shape of original_source/apps/api/src/services/rate_limit_service.py so
// the sliding-window race described in spec §9 is the real sorted-set race,
// not an approximation of it.
package kvstore

import "context"

// SortedSetStore is the minimal sorted-set contract the rate limiter needs.
// Every member is scored by its arrival timestamp (seconds, float64
// matching Redis's score type) so pruning by score prunes by age.
type SortedSetStore interface {
	// PruneAndCount atomically removes members scored at or below
	// windowStart and returns the number of members remaining, mirroring
	// the teacher-grounded reference's single pipelined
	// ZREMRANGEBYSCORE+ZCARD round trip.
	PruneAndCount(ctx context.Context, key string, windowStart float64) (int64, error)

	// Add inserts member at score and (re)sets the key's expiry to ttl,
	// preventing unbounded memory growth from abandoned keys — mirrors the
	// reference's ZADD followed by EXPIRE(window+60).
	Add(ctx context.Context, key string, score float64, member string, ttl float64) error

	// OldestScore returns the score of the lowest-scored member in key, or
	// ok=false if the set is empty. Used to compute retry_after precisely
	// when a request is rejected.
	OldestScore(ctx context.Context, key string) (score float64, ok bool, err error)

	// Delete removes one or more keys outright (admin reset operation).
	Delete(ctx context.Context, keys ...string) error
}
