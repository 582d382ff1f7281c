package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeGuestName collapses whitespace but keeps the guest's casing;
// names appear on printed confirmations as entered.
func NormalizeGuestName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeRoomType collapses whitespace. Room types are exact map keys in
// package price tables, so "Suite " and "Suite" must compare equal.
func NormalizeRoomType(roomType string) string {
	return TrimAndNormalize(roomType)
}

func NormalizeDescription(description string) string {
	return TrimAndNormalize(description)
}
