package archive

import (
	"bytes"
	"testing"
	"testing/quick"

	"github.com/pkg/errors"
)

func TestDiskStore(t *testing.T) {
	t.Run("you get what you put", func(t *testing.T) {
		store := NewDiskStore(t.TempDir())
		f := func(key Key, value Value) bool {
			if err := store.Put(key, value); err != nil {
				t.Fatal(err)
			}
			v, err := store.Get(key)
			if err != nil {
				t.Fatal(err)
			}
			return bytes.Equal(v, value)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	})
	t.Run("should not get a deleted key", func(t *testing.T) {
		store := NewDiskStore(t.TempDir())
		f := func(key Key, value Value) bool {
			if err := store.Put(key, value); err != nil {
				t.Fatal(err)
			}
			if err := store.Delete(key); err != nil {
				t.Fatal(err)
			}
			v, err := store.Get(key)
			return v == nil && errors.Is(err, ErrNotFound)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	})
	t.Run("delete inexistent key gives ErrNotFound", func(t *testing.T) {
		store := NewDiskStore(t.TempDir())
		f := func(key Key) bool {
			return errors.Is(store.Delete(key), ErrNotFound)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	})
}
