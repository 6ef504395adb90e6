package core

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStore fronts a Store with an in-process read cache for options.
// Hide lists are read on every admin render; writes go through and refresh the entry.
// User meta is not cached.
type CachedStore struct {
	Store
	c *gocache.Cache
}

// NewCachedStore caches option reads for ttl. A non-positive ttl disables expiry.
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &CachedStore{Store: next, c: gocache.New(ttl, time.Minute)}
}

type cachedOption struct {
	value string
	ok    bool
}

func (s *CachedStore) GetOption(ctx context.Context, name string) (string, bool, error) {
	if v, found := s.c.Get(name); found {
		co := v.(cachedOption)
		return co.value, co.ok, nil
	}
	v, ok, err := s.Store.GetOption(ctx, name)
	if err != nil {
		return "", false, err
	}
	s.c.SetDefault(name, cachedOption{value: v, ok: ok})
	return v, ok, nil
}

func (s *CachedStore) SetOption(ctx context.Context, name, value string) error {
	if err := s.Store.SetOption(ctx, name, value); err != nil {
		s.c.Delete(name)
		return err
	}
	s.c.SetDefault(name, cachedOption{value: value, ok: true})
	return nil
}
