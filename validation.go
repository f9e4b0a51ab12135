package encfs

import "fmt"

// Input validation helpers, kept as small free functions so callers can
// validate arguments before constructing a VolumeConfig/VolumeKeys or
// before a Skip call, all producing InvalidArgumentError.

// validateBuffer checks that a buffer is non-nil and at least minSize
// bytes long.
func validateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return NewInvalidArgumentError(name, nil, "buffer cannot be nil")
	}
	if minSize > 0 && len(buf) < minSize {
		return NewInvalidArgumentError(name, len(buf), fmt.Sprintf("buffer too small: got %d bytes, need at least %d", len(buf), minSize))
	}
	return nil
}

// validateOffset checks that offset is non-negative.
func validateOffset(offset int64, name string) error {
	if offset < 0 {
		return NewInvalidArgumentError(name, offset, "offset cannot be negative")
	}
	return nil
}

// validateKeySize checks that key has exactly expectedSize bytes.
func validateKeySize(key []byte, name string, expectedSize int) error {
	if key == nil {
		return NewInvalidArgumentError(name, nil, "key cannot be nil")
	}
	if len(key) != expectedSize {
		return NewInvalidArgumentError(name, len(key), fmt.Sprintf("invalid key size: got %d bytes, expected %d", len(key), expectedSize))
	}
	return nil
}

// validateFilePath checks that path is non-empty.
func validateFilePath(path string) error {
	if path == "" {
		return NewInvalidArgumentError("path", nil, "file path cannot be empty")
	}
	return nil
}
