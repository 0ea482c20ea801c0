// Package envutil provides small helpers for reading configuration out of
// environment variables with typed fallbacks.
package envutil

import (
	"os"
	"strconv"
)

// OrDefault returns the value of the environment variable identified by key
// or the provided fallback if the variable is unset or empty.
func OrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// OrDefaultInt returns the integer value of the environment variable
// identified by key or the provided fallback if the variable is unset,
// empty, or cannot be parsed as an integer.
func OrDefaultInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
