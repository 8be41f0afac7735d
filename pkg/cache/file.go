package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries on the local filesystem, one file per key. It
// backs the CLI, where parsed graphs and rendered frames persist between
// invocations. Payloads are written raw behind a fixed-size expiry header
// so multi-megabyte PNG frames are not inflated by an encoding step.
type FileCache struct {
	dir string
}

// expiryHeaderSize is the length of the per-entry header: the expiry as
// big-endian unix nanoseconds, zero meaning no expiry.
const expiryHeaderSize = 8

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache. Expired and corrupt entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(data) < expiryHeaderSize {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if nanos := binary.BigEndian.Uint64(data[:expiryHeaderSize]); nanos != 0 {
		if time.Now().After(time.Unix(0, int64(nanos))) {
			_ = os.Remove(path)
			return nil, false, nil
		}
	}

	return data[expiryHeaderSize:], true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := make([]byte, expiryHeaderSize+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(entry, uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(entry[expiryHeaderSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, entry, 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".bin"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
