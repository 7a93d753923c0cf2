package usecase

import (
	"context"
	"time"
)

// SearchCache is the caching port the discovery usecases depend on. The
// Redis adapter degrades to a no-op when the server is unreachable.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
