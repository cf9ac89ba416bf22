package storage

import (
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

// FileStore abstracts where uploaded images live. The application only needs
// list/save/delete over named files inside a bucket-like directory.
type FileStore interface {
	List(dir string) ([]string, error)
	Save(dir, name string, r io.Reader) error
	Delete(dir, name string) error
}
