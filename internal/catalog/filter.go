package catalog

import "strings"

// Filter returns the books whose title or author contains query,
// case-insensitively. An empty query returns the input unchanged.
// The catalog itself is never mutated; the result is a fresh slice.
func Filter(books []Book, query string) []Book {
	if query == "" {
		return books
	}
	q := strings.ToLower(query)
	var filtered []Book
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
