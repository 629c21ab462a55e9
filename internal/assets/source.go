package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"

	"wavescene/internal/utils"
)

// Source hands out raw asset bytes by slash-separated name.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// DirSource reads assets from a directory tree.
type DirSource struct {
	Root string
}

// ResolvePath returns the first existing candidate for name: under the
// root, then under the root's assets/ folder. When nothing exists the root
// candidate is returned so the caller's error names the expected location.
func (d DirSource) ResolvePath(name string) string {
	rel := filepath.FromSlash(name)
	candidates := []string{
		filepath.Join(d.Root, rel),
		filepath.Join(d.Root, "assets", rel),
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		if _, err := os.Stat(p + ".lz4"); err == nil {
			return p
		}
	}
	return candidates[0]
}

func (d DirSource) ReadFile(name string) ([]byte, error) {
	path := d.ResolvePath(name)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	compressed := path + ".lz4"
	f, lzErr := os.Open(compressed)
	if lzErr != nil {
		// Report the plain path; the .lz4 variant is a fallback.
		return nil, err
	}
	defer f.Close()

	utils.Debug("Assets: Decompressing LZ4 %s", compressed)
	out, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", compressed, err)
	}
	return out, nil
}
