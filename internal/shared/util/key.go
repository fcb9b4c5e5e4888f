package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned for object keys that are empty, traverse upward
// or carry control characters.
var ErrInvalidKey = errors.New("invalid object key")

const maxKeyLength = 1024

// NormalizeKey trims whitespace and leading slashes from a storage key and
// rejects keys that are unsafe to hand to a bucket or a filesystem root.
func NormalizeKey(raw string) (string, error) {
	key := strings.TrimLeft(strings.TrimSpace(raw), "/")
	if key == "" || len(key) > maxKeyLength {
		return "", ErrInvalidKey
	}
	for _, r := range key {
		if unicode.IsControl(r) || r == '\\' {
			return "", ErrInvalidKey
		}
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", ErrInvalidKey
		}
	}
	return key, nil
}
