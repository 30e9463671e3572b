package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// cache key for a specific property.
func PropertyKey(id string) string {
	return fmt.Sprintf("property:%s", id)
}

// cache key for the set of cache keys associated with a property.
func PropertyKeysSetKey(propertyID string) string {
	return fmt.Sprintf("property:keys:%s", propertyID)
}

// cache key for a paginated, optionally filtered property list. Filter
// parameters are sorted so that equivalent queries share a key.
func PropertyListKey(offset, limit int, filters url.Values) string {
	base := fmt.Sprintf("properties:list:offset:%d:limit:%d", offset, limit)
	if len(filters) == 0 {
		return base
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.ToLower(strings.TrimSpace(filters.Get(name)))
		if value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", name, value))
	}
	if len(parts) == 0 {
		return base
	}
	return base + ":" + strings.Join(parts, ":")
}

// cache key for a revoked session token, keyed by its jti claim.
func TokenDenylistKey(jti string) string {
	return fmt.Sprintf("token:denylist:%s", jti)
}
