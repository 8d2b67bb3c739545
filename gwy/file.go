package gwy

import (
	"os"

	"github.com/creachadair/atomicfile"
)

// ReadFile reads and decodes a full GWY stream (magic header included)
// from path, with no limit on the decoded size beyond the file's own
// length.
func ReadFile(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Fread(f, uint64(info.Size()))
}

// WriteFile encodes obj as a full GWY stream and writes it to path,
// replacing any existing file atomically: readers of path never
// observe a partially-written file, and a crash mid-write leaves the
// previous contents (or nothing) rather than a truncated one.
func WriteFile(obj *Object, path string) error {
	w, err := atomicfile.New(path, 0644)
	if err != nil {
		return err
	}
	if err := Fwrite(obj, w); err != nil {
		w.Cancel()
		return err
	}
	return w.Close()
}
