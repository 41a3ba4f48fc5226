package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "gestionpet"

// LoadError carries a failure of the loader passed to FetchJSON, as opposed
// to a failure of the cache itself.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return "cache: load: " + e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// Recorder observes cache effectiveness per namespace.
type Recorder interface {
	CacheHit(namespace string)
	CacheMiss(namespace string)
}

// Store caches whole-table reads as JSON under versioned keys. Writers bump
// the namespace version instead of deleting keys, so stale entries simply
// expire with their TTL.
type Store struct {
	client   *redis.Client
	ttl      time.Duration
	recorder Recorder
	group    singleflight.Group
}

// NewStore wraps client. A nil client yields a pass-through store.
func NewStore(client *redis.Client, ttl time.Duration, recorder Recorder) *Store {
	return &Store{client: client, ttl: ttl, recorder: recorder}
}

func versionKey(namespace string) string {
	return keyPrefix + ":" + namespace + ":version"
}

// Version returns the current version of namespace, initialising when missing.
func (s *Store) Version(ctx context.Context, namespace string) (int64, error) {
	if s == nil || s.client == nil {
		return 0, nil
	}
	ver, err := s.client.Get(ctx, versionKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		if err := s.client.SetNX(ctx, versionKey(namespace), 1, 0).Err(); err != nil {
			return 0, err
		}
		return s.client.Get(ctx, versionKey(namespace)).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchJSON loads the cached value for namespace into dest or populates it
// using loader. Concurrent misses for the same key share one loader call,
// which runs detached from the caller's cancellation. Loader failures are
// returned as *LoadError; a cancelled caller gets ctx.Err().
func (s *Store) FetchJSON(ctx context.Context, namespace string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if s == nil || s.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return &LoadError{Err: err}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}

	ver, err := s.Version(ctx, namespace)
	if err != nil {
		return fmt.Errorf("cache: version: %w", err)
	}
	key := fmt.Sprintf("%s:%s:all:%d", keyPrefix, namespace, ver)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		s.hit(namespace)
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache: get: %w", err)
	}
	s.miss(namespace)

	loadCtx := context.WithoutCancel(ctx)
	resultChan := s.group.DoChan(key, func() (any, error) {
		value, err := loader(loadCtx)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := s.client.Set(loadCtx, key, raw, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("cache: set: %w", err)
		}
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

// Bump invalidates every cached entry of namespace.
func (s *Store) Bump(ctx context.Context, namespace string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Incr(ctx, versionKey(namespace)).Err()
}

func (s *Store) hit(namespace string) {
	if s.recorder != nil {
		s.recorder.CacheHit(namespace)
	}
}

func (s *Store) miss(namespace string) {
	if s.recorder != nil {
		s.recorder.CacheMiss(namespace)
	}
}
