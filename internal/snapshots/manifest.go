package snapshots

import (
	"os"
	"time"

	"github.com/goccy/go-json"

	"wasup-chucks/internal/fsutil"
)

const manifestVersion = 1

// Manifest records when the cached document was fetched and which days it covers.
type Manifest struct {
	Version   int       `json:"version"`
	FetchedAt time.Time `json:"fetchedAt"`
	Dates     []string  `json:"dates"`
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(path string, m Manifest) error {
	m.Version = manifestVersion
	if m.Dates == nil {
		m.Dates = []string{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data)
}
