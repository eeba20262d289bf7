package utils

import "strings"

// ValidID reports whether s is usable as a Firestore document identifier.
func ValidID(s string) bool {
	if s == "" || len(s) > 1500 {
		return false
	}
	if s == "." || s == ".." {
		return false
	}
	if strings.Contains(s, "/") {
		return false
	}
	if strings.HasPrefix(s, "__") && strings.HasSuffix(s, "__") {
		return false
	}
	return true
}
