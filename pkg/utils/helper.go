package utils

import (
	"strconv"
)

// ParseInt converts string to int, returning defaultValue when it is empty,
// malformed or negative
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 0 {
		return defaultValue
	}

	return result
}

// ParseID parses a positive path identifier
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
