// Package rediscache keeps the persistent menu cache in Redis so several refreshers can share it.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wasup-chucks/internal/domain/menus"
)

const (
	defaultPrefix = "chucks:"
	keyMenuJSON   = "menu_json"
	keyCacheTime  = "cache_time"
)

// cmdable is the subset of the go-redis client the store uses.
type cmdable interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store is a Redis-backed persistent cache tier.
type Store struct {
	client    cmdable
	closer    func() error
	menuKey   string
	cachedKey string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	s := newStore(rdb, opts.Prefix)
	s.closer = rdb.Close
	return s, nil
}

func newStore(client cmdable, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		client:    client,
		menuKey:   prefix + keyMenuJSON,
		cachedKey: prefix + keyCacheTime,
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Load reads both keys in one round trip. A missing key is a miss.
func (s *Store) Load(ctx context.Context) (menus.Snapshot, bool, error) {
	vals, err := s.client.MGet(ctx, s.menuKey, s.cachedKey).Result()
	if errors.Is(err, redis.Nil) {
		return menus.Snapshot{}, false, nil
	}
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("redis mget: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return menus.Snapshot{}, false, nil
	}

	body, ok := vals[0].(string)
	if !ok {
		return menus.Snapshot{}, false, fmt.Errorf("unexpected %s type %T", s.menuKey, vals[0])
	}
	rawTime, ok := vals[1].(string)
	if !ok {
		return menus.Snapshot{}, false, fmt.Errorf("unexpected %s type %T", s.cachedKey, vals[1])
	}

	millis, err := strconv.ParseInt(rawTime, 10, 64)
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("parse %s: %w", s.cachedKey, err)
	}
	resp, err := menus.Unmarshal([]byte(body))
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("decode %s: %w", s.menuKey, err)
	}
	return menus.Snapshot{Menu: resp, FetchedAt: time.UnixMilli(millis)}, true, nil
}

// Save writes both keys with a single MSET.
func (s *Store) Save(ctx context.Context, snap menus.Snapshot) error {
	data, err := menus.Marshal(snap.Menu)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	err = s.client.MSet(ctx,
		s.menuKey, string(data),
		s.cachedKey, strconv.FormatInt(snap.FetchedAt.UnixMilli(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

// Clear deletes both keys.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.menuKey, s.cachedKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
