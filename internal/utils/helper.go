package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify turns a category or product name into a URL-safe slug.
func Slugify(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	return uint(n), err
}
