// Package archive provides name-addressed storage for encoded GWY
// data: a disk-backed store for local archives and an S3-backed store
// for off-machine ones, behind a common Store interface.
//
// Adapted from muscle's internal/storage package: same Key/Value/Store
// shape, same disk layout (the key's first two characters name a
// prefix directory to keep any one directory from growing huge), same
// S3 client wiring. What's new here is the gwy.Object <-> Value
// boundary: PutObject/GetObject encode and decode through the wire
// codec instead of storing opaque blobs.
package archive

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gwyddion/gwyfile-go/gwy"
)

// ErrNotFound is returned (wrapped) when a key has no value in the store.
var ErrNotFound = errors.New("not found")

// Key identifies a stored value by a caller-chosen name (gwycat archive
// uses the NAME argument as given).
type Key string

// Value is an opaque, already-encoded byte blob.
type Value []byte

// Store is the minimal interface archives are built against.
type Store interface {
	Get(Key) (Value, error)
	Put(Key, Value) error
	Delete(Key) error
	ForEach(func(Key) error) error
}

// PutObject encodes obj as a bare object (no magic header) and stores
// it under key.
func PutObject(s Store, key Key, obj *gwy.Object) error {
	buf, err := gwy.EncodeObject(obj)
	if err != nil {
		return fmt.Errorf("archive: encode %q: %w", key, err)
	}
	return s.Put(key, Value(buf))
}

// GetObject retrieves the value stored under key and decodes it as a
// bare object (no magic header), the form PutObject stores. A value put
// with a magic header, such as a whole file stored by gwycat archive
// push, does not decode here.
func GetObject(s Store, key Key, maxSize uint64) (*gwy.Object, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	obj, err := gwy.DecodeObject(bytes.NewReader(value), maxSize)
	if err != nil {
		return nil, fmt.Errorf("archive: decode %q: %w", key, err)
	}
	return obj, nil
}
