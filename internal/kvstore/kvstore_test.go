package kvstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wasup-chucks/internal/domain/menus"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sample() menus.Snapshot {
	return menus.Snapshot{
		Menu: menus.Response{
			"2024-09-09": {{Venue: "Home Cooking", Slot: "lunch", Items: []menus.Item{{Name: "Pot Roast", Allergens: []menus.Allergen{}}}}},
		},
		FetchedAt: time.UnixMilli(1725883200123),
	}
}

func TestMigrationSetsUserVersion(t *testing.T) {
	s := newTestStore(t)
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
	if err := s.migrate(); err != nil {
		t.Fatalf("expected re-running migrations to be a no-op, got %v", err)
	}
}

func TestLoadEmptyIsMiss(t *testing.T) {
	s := newTestStore(t)
	if _, ok, err := s.Load(context.Background()); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestSaveLoadClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.FetchedAt.UnixMilli() != 1725883200123 {
		t.Fatalf("expected millisecond timestamp preserved, got %d", got.FetchedAt.UnixMilli())
	}
	if day := got.Menu.Day("2024-09-09"); len(day) != 1 || day[0].Items[0].Name != "Pot Roast" {
		t.Fatalf("unexpected menu %+v", got.Menu)
	}

	updated := sample()
	updated.FetchedAt = updated.FetchedAt.Add(time.Hour)
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, _, _ = s.Load(ctx)
	if !got.FetchedAt.Equal(updated.FetchedAt) {
		t.Fatalf("expected upsert to replace timestamp, got %v", got.FetchedAt)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(ctx); ok {
		t.Fatalf("expected miss after clear")
	}
}

func TestMissingTimestampIsMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.db.Exec(`INSERT INTO menu_cache (key, value) VALUES (?, ?)`, KeyMenuJSON, `{}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := s.Load(ctx); ok || err != nil {
		t.Fatalf("expected miss when timestamp absent, got ok=%v err=%v", ok, err)
	}
}

func TestCorruptValuesAreErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.db.Exec(`INSERT INTO menu_cache (key, value) VALUES (?, ?), (?, ?)`,
		KeyMenuJSON, `{"x":`, KeyCacheTime, "not-a-number"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := s.Load(ctx); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFileBackedStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "menu.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, ok, err := reopened.Load(ctx); !ok || err != nil {
		t.Fatalf("expected persisted snapshot, got ok=%v err=%v", ok, err)
	}
}
