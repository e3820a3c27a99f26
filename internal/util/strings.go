// Package util provides common utility functions used across the codebase.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// SplitCSV splits a comma-separated string into trimmed, non-empty items.
// Order is preserved and duplicates are kept; callers that need set
// semantics must dedupe themselves.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinOrNone joins strings with ", " or returns "(none)" for empty slices.
// Useful for displaying lists of keys or repos where an empty list should
// show a placeholder rather than nothing.
func JoinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// ExpandHome expands a leading ~ or ~/ in a path to the user's home
// directory. Paths without a tilde prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ShellQuote wraps a string in single quotes, escaping any existing single
// quotes. Safe for use in shell commands where the string should be treated
// literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}
