// Package cache provides a small key-value cache for serialized analysis
// results.
package cache

import "context"

// Cache is the interface for analysis-result caching. Implementations are
// best-effort: a miss or a failed Set must never fail the request that
// triggered it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
