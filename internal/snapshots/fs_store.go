package snapshots

import (
	"context"
	"errors"
	"fmt"
	"os"

	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/fsutil"
)

// FSStore persists the menu document and its fetch time as two files in a directory.
type FSStore struct {
	dir string
}

// NewFSStore constructs a file-backed store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Dir exposes the store root.
func (s *FSStore) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Load reads the cached document. A missing document or manifest is a miss, not an error.
func (s *FSStore) Load(ctx context.Context) (menus.Snapshot, bool, error) {
	_ = ctx
	if s == nil {
		return menus.Snapshot{}, false, errors.New("snapshot store not configured")
	}

	m, err := readManifest(MetaPath(s.dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return menus.Snapshot{}, false, nil
		}
		return menus.Snapshot{}, false, fmt.Errorf("read manifest: %w", err)
	}

	data, err := os.ReadFile(CachePath(s.dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return menus.Snapshot{}, false, nil
		}
		return menus.Snapshot{}, false, fmt.Errorf("read menu cache: %w", err)
	}
	resp, err := menus.Unmarshal(data)
	if err != nil {
		return menus.Snapshot{}, false, fmt.Errorf("decode menu cache: %w", err)
	}
	return menus.Snapshot{Menu: resp, FetchedAt: m.FetchedAt}, true, nil
}

// Save writes the document first and the manifest second, so a manifest never points at a missing document.
func (s *FSStore) Save(ctx context.Context, snap menus.Snapshot) error {
	_ = ctx
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	data, err := menus.Marshal(snap.Menu)
	if err != nil {
		return fmt.Errorf("encode menu cache: %w", err)
	}
	if err := fsutil.WriteFileAtomic(CachePath(s.dir), data); err != nil {
		return fmt.Errorf("write menu cache: %w", err)
	}
	m := Manifest{FetchedAt: snap.FetchedAt.UTC(), Dates: snap.Menu.Dates()}
	if err := writeManifest(MetaPath(s.dir), m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Clear removes both files. Missing files are ignored.
func (s *FSStore) Clear(ctx context.Context) error {
	_ = ctx
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	for _, path := range []string{MetaPath(s.dir), CachePath(s.dir)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
