// Package cache builds the Redis key namespace.
//
// Keys follow "prepwise:<service>:<objectType>:<identifier>[:<params>]",
// where params are underscore-joined. Examples:
//
//	prepwise:access:viewed:01ARZ3...
//	prepwise:question:popular:all
//	prepwise:question:list:topic:category_difficulty
package cache

import "strings"

const GlobalKeyPrefix = "prepwise"

// GenerateCacheKey assembles a namespaced cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	parts := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		parts = append(parts, strings.Join(paramsKey, "_"))
	}
	return strings.Join(parts, ":")
}
