package usecase

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes arbitrary text into the comparable form used by
// every other component: accents folded to ASCII, lowercased, everything
// that is not a letter, digit or whitespace removed, whitespace runs
// collapsed to a single space. Total and idempotent; two strings are the
// same token iff their normalized forms are equal.
func Normalize(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	s = nonAlphanumericRegex.ReplaceAllString(s, "")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
