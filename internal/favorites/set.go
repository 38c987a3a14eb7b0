// Package favorites matches menu items against a user's favorite dishes and keywords.
package favorites

import (
	"sort"
	"strings"

	"wasup-chucks/internal/domain/menus"
)

// Set holds exact favorite item names and free-text keywords.
type Set struct {
	Items    map[string]struct{}
	Keywords map[string]struct{}
}

// NewSet builds a Set. Keywords are trimmed; blank keywords are dropped.
func NewSet(items, keywords []string) Set {
	s := Set{
		Items:    make(map[string]struct{}, len(items)),
		Keywords: make(map[string]struct{}, len(keywords)),
	}
	for _, name := range items {
		if name != "" {
			s.Items[name] = struct{}{}
		}
	}
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			s.Keywords[kw] = struct{}{}
		}
	}
	return s
}

// Empty reports whether there is nothing to match.
func (s Set) Empty() bool {
	return len(s.Items) == 0 && len(s.Keywords) == 0
}

// IsFavorite reports whether an item is named exactly or contains a keyword, ignoring case.
func (s Set) IsFavorite(item menus.Item) bool {
	return s.matches(item.Name)
}

// SortedItems returns the exact names in ascending order.
func (s Set) SortedItems() []string {
	return sortedKeys(s.Items)
}

// SortedKeywords returns the keywords in ascending order.
func (s Set) SortedKeywords() []string {
	return sortedKeys(s.Keywords)
}

func (s Set) matches(name string) bool {
	if _, ok := s.Items[name]; ok {
		return true
	}
	if len(s.Keywords) == 0 {
		return false
	}
	lower := strings.ToLower(name)
	for kw := range s.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
