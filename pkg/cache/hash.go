package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Key type labels passed to observability hooks.
const (
	KeyTypeCatalog = "catalog"
)

// CatalogKey returns the cache key for a catalog source.
// The key format is: catalog:hash(source)
func CatalogKey(source string) string {
	return fmt.Sprintf("%s:%s", KeyTypeCatalog, Hash([]byte(strings.TrimSpace(source))))
}

// keyType extracts the prefix of a key for hook reporting.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
