package model

import "strings"

// Resolve picks the display value for a Korean/Uzbek field pair:
// the Korean side when it is non-empty, otherwise the Uzbek side.
func Resolve(ko, uz string) string {
	if strings.TrimSpace(ko) != "" {
		return ko
	}
	return uz
}

// PickLanguage returns the value for the requested language with the
// usual fallback to the other side. Language defaults to Korean.
func PickLanguage(ko, uz, language string) string {
	if language == "uz" {
		if strings.TrimSpace(uz) != "" {
			return uz
		}
		return ko
	}
	return Resolve(ko, uz)
}

// HasBilingual reports whether at least one side of a pair is non-empty.
func HasBilingual(ko, uz string) bool {
	return strings.TrimSpace(ko) != "" || strings.TrimSpace(uz) != ""
}
