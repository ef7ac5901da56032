// Package registry lists GGUF files in the models directory so a front-end
// can offer an explicit model path. It does not load or track models.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mintai/internal/common/fsutil"
	"mintai/pkg/types"
)

// GGUFScanner lists *.gguf files (case-insensitive) in a directory.
type GGUFScanner struct {
	// DefaultName marks the entry matching the default model file name.
	DefaultName string
}

func NewGGUFScanner(defaultName string) GGUFScanner { return GGUFScanner{DefaultName: defaultName} }

// Scan returns the GGUF files in dir sorted by name. A missing directory is
// not an error: nothing has been downloaded yet.
func (s GGUFScanner) Scan(dir string) ([]types.ModelFile, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.ModelFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	models := make([]types.ModelFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		p := filepath.Join(abs, name)
		models = append(models, types.ModelFile{
			Name:      name,
			Path:      p,
			SizeBytes: fsutil.FileSize(p),
			Default:   s.DefaultName != "" && name == s.DefaultName,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}
