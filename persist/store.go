package persist

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// Store is where saved files end up. Names are slash or OS separated
// paths built from the save request's base path.
//
// ReadFile must return an error matching fs.ErrNotExist for missing files.
type Store interface {
	WriteFile(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
}

// DirStore writes straight to the file system, creating parent
// directories as needed.
type DirStore struct {
	// Perm is used for new files, default 0644.
	Perm os.FileMode
}

// WriteFile implements Store. Existing files are truncated.
func (d DirStore) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	perm := d.Perm
	if perm == 0 {
		perm = 0644
	}
	return ioutil.WriteFile(name, data, perm)
}

// ReadFile implements Store.
func (d DirStore) ReadFile(name string) ([]byte, error) {
	return ioutil.ReadFile(name)
}
