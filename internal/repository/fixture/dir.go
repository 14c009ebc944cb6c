package fixture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// NewDirSource creates a catalog source reading fixture files from a local
// directory.
func NewDirSource(dir string) *Source {
	return &Source{f: &dirFetcher{dir: dir}}
}

type dirFetcher struct {
	dir string
}

func (d *dirFetcher) fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	return data, nil
}
