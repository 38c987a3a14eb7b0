package favorites

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"wasup-chucks/internal/fsutil"
)

// document is the on-disk YAML layout.
type document struct {
	Items    []string `yaml:"items"`
	Keywords []string `yaml:"keywords"`
}

// FileStore keeps favorites in a YAML file. A missing file holds no favorites.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store reading and writing path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the current favorites.
func (s *FileStore) Load() (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return Set{}, err
	}
	return NewSet(doc.Items, doc.Keywords), nil
}

// ToggleItem adds name when absent and removes it when present. It reports whether name is now a favorite.
func (s *FileStore) ToggleItem(name string) (bool, error) {
	var added bool
	err := s.update(func(set Set) {
		if _, ok := set.Items[name]; ok {
			delete(set.Items, name)
			return
		}
		if name != "" {
			set.Items[name] = struct{}{}
			added = true
		}
	})
	return added, err
}

// AddKeyword stores a trimmed keyword. Blank keywords are ignored.
func (s *FileStore) AddKeyword(keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	return s.update(func(set Set) {
		set.Keywords[keyword] = struct{}{}
	})
}

// RemoveKeyword deletes a keyword if present.
func (s *FileStore) RemoveKeyword(keyword string) error {
	return s.update(func(set Set) {
		delete(set.Keywords, keyword)
	})
}

func (s *FileStore) update(fn func(Set)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	set := NewSet(doc.Items, doc.Keywords)
	fn(set)
	return s.write(document{Items: set.SortedItems(), Keywords: set.SortedKeywords()})
}

func (s *FileStore) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("read favorites: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse favorites %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) write(doc document) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
