package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	key   Key
	value any
	fresh bool
}

// inflight is a load that has no entry in the map yet. Invalidate marks it so
// the finished load is stored already stale instead of masking the mutation.
type inflight struct {
	key         Key
	invalidated bool
}

// Store is the query cache. One Store instance belongs to one composition
// root; tests build their own isolated instances.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	loads   map[string]*inflight
	group   singleflight.Group
	log     *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		entries: make(map[string]entry),
		loads:   make(map[string]*inflight),
		log:     log,
	}
}

// Fetch returns the cached value for key, loading it through loader on a miss
// or after an invalidation. Disabled fetches return the zero value without
// loading or caching. Concurrent fetches of the same key share one loader
// call; the shared flight is detached from any single caller's cancellation
// so the remaining waiters still get their result.
func Fetch[T any](ctx context.Context, s *Store, key Key, enabled bool, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if !enabled {
		return zero, nil
	}

	id := key.String()
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok && e.fresh {
		return e.value.(T), nil
	}

	value, err, shared := s.group.Do(id, func() (any, error) {
		// A coalesced waiter may arrive just after the leader stored the
		// result; serve the entry instead of loading twice.
		s.mu.RLock()
		e, ok := s.entries[id]
		s.mu.RUnlock()
		if ok && e.fresh {
			return e.value, nil
		}

		load := &inflight{key: key}
		s.mu.Lock()
		s.loads[id] = load
		s.mu.Unlock()

		loaded, err := loader(context.WithoutCancel(ctx))

		// An invalidation that raced the load saw no entry to mark; it marked
		// the load instead. Store the snapshot stale so the waiters get their
		// result but the next fetch reloads.
		s.mu.Lock()
		delete(s.loads, id)
		if err == nil {
			s.entries[id] = entry{key: key, value: loaded, fresh: !load.invalidated}
		}
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	if shared {
		s.log.Debug("coalesced fetch", "key", id)
	}
	return value.(T), nil
}

// Invalidate marks every entry under the key prefix stale. The values stay in
// place until the next fetch reloads them; unrelated keys are untouched.
func (s *Store) Invalidate(prefix Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if e.key.HasPrefix(prefix) {
			e.fresh = false
			s.entries[id] = e
		}
	}
	for _, load := range s.loads {
		if load.key.HasPrefix(prefix) {
			load.invalidated = true
		}
	}
	s.log.Debug("cache invalidated", "prefix", prefix.String())
}
