// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Name trims s and collapses runs of whitespace to one space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Username trims s. Case is kept; the backend compares usernames as typed.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a raw query value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
