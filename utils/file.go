package utils

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrTooLarge = errors.New("document exceeds size limit")

// LocalPath returns the filesystem path named by location when it is a
// file:// URI or a bare path. Remote URLs report false.
func LocalPath(location string) (string, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return location, true
	}
	if u.Scheme == "file" {
		if u.Host != "" && u.Host != "localhost" {
			return "", false
		}
		return u.Path, true
	}
	// Windows drive letters parse as a one-letter scheme.
	if len(u.Scheme) == 1 {
		return location, true
	}
	return "", false
}

// ReadFileLimited reads a regular file, failing when it is larger than
// maxBytes. A non-positive maxBytes disables the limit.
func ReadFileLimited(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return ReadAllLimited(f, maxBytes)
}

// ReadAllLimited reads r to the end, failing once more than maxBytes have
// been seen. A non-positive maxBytes disables the limit.
func ReadAllLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}
	return b, nil
}

// GetFileNameWithoutExt extracts filename without extension from a path or URL.
func GetFileNameWithoutExt(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	base := filepath.Base(location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
