package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxKeyLength bounds design node keys.
const maxKeyLength = 128

// keyRegex matches design node keys: an alphanumeric start followed by
// alphanumerics, '_', '-', '.' or ':'.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)

// ValidateKey validates a design node key. Keys are referenced by parent
// links and layout targets, so they are restricted to a conservative set.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidDesign, "node key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidDesign, "node key too long (max %d characters)", maxKeyLength)
	}
	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidDesign, "invalid node key: %q", key)
	}
	return nil
}

// ValidateName validates a node display name.
//
// The validation rules are intentionally conservative:
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Empty names are allowed; callers fall back to the node key.
func ValidateName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidDesign, "node name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDesign, "node name contains invalid control characters")
		}
	}
	return nil
}

// ValidateDesignFilename validates the path of a design file.
// It checks for control characters and a supported extension (.json, .toml).
func ValidateDesignFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "design path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported design file extension %q (want .json or .toml)", filepath.Ext(path))
}

// ValidateRedisURL validates a cache backend URL.
// It ensures the URL uses the redis or rediss scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}

	return nil
}
