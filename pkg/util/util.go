package util

import "os"

// UserWritableFilePerms represents the standard permissions for newly created files (rw-r--r--).
const UserWritableFilePerms os.FileMode = 0644

// InvertMap takes a map[K]V and returns a map[V]K.
// It's a generic helper for creating reverse lookup maps for enums.
func InvertMap[K comparable, V comparable](m map[K]V) map[V]K {
	inv := make(map[V]K, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}
