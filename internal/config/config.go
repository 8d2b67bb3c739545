// Package config loads the small line-oriented configuration file that
// selects and parametrizes an internal/archive backend, in the same
// "key value" format and loading discipline as the teacher's own
// configuration loader.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseDirectoryPath is where gwycat looks for its configuration
// file absent an explicit -base flag. It defaults to $GWYCAT_BASE if
// set, otherwise $HOME/lib/gwycat.
var DefaultBaseDirectoryPath string

func init() {
	if base := os.Getenv("GWYCAT_BASE"); base != "" {
		DefaultBaseDirectoryPath = base
	} else {
		DefaultBaseDirectoryPath = os.ExpandEnv("$HOME/lib/gwycat")
	}
}

// C holds the archive backend selection: "disk" (the default) or "s3".
type C struct {
	Storage string

	// Meaningful only if Storage == "disk". If relative, resolved
	// against the base directory at load time.
	DiskStoreDir string

	// Meaningful only if Storage == "s3".
	S3Region  string
	S3Bucket  string
	S3Profile string

	base string
}

// Load reads the file named "config" in base.
func Load(base string) (*C, error) {
	filename := filepath.Join(base, "config")
	if fi, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	} else if fi.Mode()&0077 != 0 {
		return nil, fmt.Errorf("config.Load %q: mode is %#o, want at most %#o",
			filename, fi.Mode()&0777, fi.Mode()&0700)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	c, err := load(f)
	if err != nil {
		return nil, err
	}
	c.base = base
	if c.Storage == "" {
		c.Storage = "disk"
	}
	if c.DiskStoreDir == "" {
		c.DiskStoreDir = filepath.Join(base, "archive")
	} else if !filepath.IsAbs(c.DiskStoreDir) {
		c.DiskStoreDir = filepath.Clean(filepath.Join(base, c.DiskStoreDir))
	}
	return c, nil
}

func load(r io.Reader) (*C, error) {
	c := C{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		i := strings.IndexAny(line, " \t")
		if i == -1 {
			return nil, fmt.Errorf("config: no separator in %q", line)
		}
		switch key, val := line[:i], strings.TrimSpace(line[i:]); key {
		case "storage":
			c.Storage = val
		case "disk-store-dir":
			c.DiskStoreDir = val
		case "s3-region":
			c.S3Region = val
		case "s3-bucket":
			c.S3Bucket = val
		case "s3-profile":
			c.S3Profile = val
		default:
			return nil, fmt.Errorf("config: unknown key %q", key)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// Initialize writes a default disk-backed configuration to baseDir.
func Initialize(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return fmt.Errorf("%q: could not mkdir: %w", baseDir, err)
	}
	path := filepath.Join(baseDir, "config")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q: already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%q: could not determine if it exists: %w", path, err)
	}
	const body = "storage disk\ndisk-store-dir archive\n"
	return os.WriteFile(path, []byte(body), 0600)
}
