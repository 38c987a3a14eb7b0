package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"wasup-chucks/internal/domain/menus"
)

// fakeRedis keeps string values in a map and mimics MGET/MSET/DEL replies.
type fakeRedis struct {
	values map[string]string
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	_ = ctx
	if f.err != nil {
		return redis.NewSliceResult(nil, f.err)
	}
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.values[k]; ok {
			out[i] = v
		}
	}
	return redis.NewSliceResult(out, nil)
}

func (f *fakeRedis) MSet(ctx context.Context, values ...interface{}) *redis.StatusCmd {
	_ = ctx
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	for i := 0; i+1 < len(values); i += 2 {
		f.values[values[i].(string)] = values[i+1].(string)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	_ = ctx
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sample() menus.Snapshot {
	return menus.Snapshot{
		Menu:      menus.Response{"2024-09-09": {{Venue: "Home Cooking", Slot: "dinner", Items: []menus.Item{}}}},
		FetchedAt: time.UnixMilli(1725900000000),
	}
}

func TestStoreSaveLoadClear(t *testing.T) {
	fake := newFakeRedis()
	s := newStore(fake, "")
	ctx := context.Background()

	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("expected miss on empty redis, got ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := fake.values["chucks:menu_json"]; !ok {
		t.Fatalf("expected prefixed menu key, got %v", fake.values)
	}
	if got := fake.values["chucks:cache_time"]; got != "1725900000000" {
		t.Fatalf("expected millisecond timestamp, got %q", got)
	}

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !got.FetchedAt.Equal(sample().FetchedAt) || len(got.Menu.Day("2024-09-09")) != 1 {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(fake.values) != 0 {
		t.Fatalf("expected keys removed, got %v", fake.values)
	}
}

func TestStorePartialKeysAreMiss(t *testing.T) {
	fake := newFakeRedis()
	fake.values["app:menu_json"] = "{}"
	s := newStore(fake, "app:")

	if _, ok, err := s.Load(context.Background()); ok || err != nil {
		t.Fatalf("expected miss with only one key, got ok=%v err=%v", ok, err)
	}
}

func TestStoreCorruptTimestampIsError(t *testing.T) {
	fake := newFakeRedis()
	fake.values["chucks:menu_json"] = "{}"
	fake.values["chucks:cache_time"] = "yesterday"

	if _, _, err := newStore(fake, "").Load(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStorePropagatesRedisErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection reset")
	s := newStore(fake, "")
	ctx := context.Background()

	if _, _, err := s.Load(ctx); err == nil {
		t.Fatalf("expected load error")
	}
	if err := s.Save(ctx, sample()); err == nil {
		t.Fatalf("expected save error")
	}
	if err := s.Clear(ctx); err == nil {
		t.Fatalf("expected clear error")
	}
}

func TestStoreTreatsRedisNilAsMiss(t *testing.T) {
	fake := newFakeRedis()
	fake.err = redis.Nil
	if _, ok, err := newStore(fake, "").Load(context.Background()); ok || err != nil {
		t.Fatalf("expected redis.Nil to be a miss, got ok=%v err=%v", ok, err)
	}
}

func TestCloseWithoutClientIsNoop(t *testing.T) {
	if err := newStore(newFakeRedis(), "").Close(); err != nil {
		t.Fatalf("expected nil close error, got %v", err)
	}
}
