package utils

import (
	"strconv"
)

// StringToInt converts string to int, returning 0 on error.
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// ParsePage parses a page query parameter, defaulting to 1.
func ParsePage(s string) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return 1
}
