package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
)

// DiskStore stores values as files under a root directory, splitting
// each key's first two characters into a subdirectory so that a single
// directory never accumulates every value in the archive.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir. dir is not created
// until the first Put.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Get(k Key) (Value, error) {
	b, err := os.ReadFile(s.pathFor(k))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%q: %w", k, ErrNotFound)
	}
	return b, err
}

func (s *DiskStore) Put(k Key, v Value) error {
	p := s.pathFor(k)
	pnew := p + ".new"
	err := os.WriteFile(pnew, v, 0666)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err = os.MkdirAll(filepath.Dir(pnew), 0777); err != nil {
			return err
		}
		err = os.WriteFile(pnew, v, 0666)
	}
	if err != nil {
		return err
	}
	return os.Rename(pnew, p)
}

func (s *DiskStore) Delete(k Key) error {
	err := os.Remove(s.pathFor(k))
	if err != nil {
		if perr, ok := err.(*os.PathError); ok {
			if serr, ok := perr.Err.(syscall.Errno); ok && serr == syscall.ENOENT {
				return errors.Wrapf(ErrNotFound, "could not delete %v", k)
			}
		}
	}
	return err
}

func (s *DiskStore) ForEach(cb func(Key) error) error {
	var keys []Key
	err := filepath.Walk(s.dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && filepath.Ext(p) != ".new" {
			keys = append(keys, Key(filepath.Base(p)))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := cb(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *DiskStore) Contains(k Key) (bool, error) {
	_, err := os.Stat(s.pathFor(k))
	if os.IsNotExist(err) {
		return false, nil
	}
	return true, err
}

func (s *DiskStore) pathFor(key Key) string {
	k := string(key)
	if len(k) < 2 {
		return filepath.Join(s.dir, k)
	}
	return filepath.Join(s.dir, k[:2], k)
}
