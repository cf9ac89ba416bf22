package storage

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore keeps files on the local disk under a root directory. Directory
// and file names are flattened to their base name so callers cannot escape
// the root.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(dir, name string) string {
	return filepath.Join(s.root, filepath.Base(dir), filepath.Base(name))
}

func (s *LocalStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.Base(dir)))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalStore) Save(dir, name string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Join(s.root, filepath.Base(dir)), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Sync()
}

func (s *LocalStore) Delete(dir, name string) error {
	err := os.Remove(s.path(dir, name))
	if err != nil && os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// AllowedImageExt reports whether the extension is an accepted image type.
func AllowedImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif":
		return true
	}
	return false
}
