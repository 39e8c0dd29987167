package store

import (
	"context"
	"fmt"

	"atelierapi/logger"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	libstore "github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// CachedStore puts a ristretto cache in front of another Store. Reads go
// through the cache; saves drop the cached value before writing the backend.
type CachedStore struct {
	backend Store
	client  *ristretto.Cache
	cache   *cache.Cache[[]byte]
}

func NewCachedStore(backend Store) (*CachedStore, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 26, // 64MB of encoded collections
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	return &CachedStore{
		backend: backend,
		client:  ristrettoCache,
		cache:   cache.New[[]byte](ristrettoStore),
	}, nil
}

func (s *CachedStore) Load(ctx context.Context, key string) ([]byte, error) {
	if value, err := s.cache.Get(ctx, key); err == nil {
		return append([]byte(nil), value...), nil
	}

	value, err := s.backend.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	// a dropped set only costs the next load a backend read
	if err := s.cache.Set(ctx, key, append([]byte(nil), value...), libstore.WithCost(int64(len(value)))); err != nil {
		logger.Debug("cache set failed", logger.String("key", key), logger.ErrorF(err))
	}
	// ristretto applies sets asynchronously; keep set and delete ordered with saves
	s.client.Wait()
	return value, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Debug("cache delete failed", logger.String("key", key), logger.ErrorF(err))
	}
	s.client.Wait()
	return s.backend.Save(ctx, key, value)
}
