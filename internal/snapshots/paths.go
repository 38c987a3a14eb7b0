package snapshots

import "path/filepath"

// Files kept under an FSStore directory.
const (
	menuFile     = "menus.json"
	manifestFile = "menus.manifest.json"
)

// CachePath returns the menu document location under dir.
func CachePath(dir string) string { return filepath.Join(dir, menuFile) }

// MetaPath returns the manifest location under dir; the manifest records when the menu was fetched.
func MetaPath(dir string) string { return filepath.Join(dir, manifestFile) }
