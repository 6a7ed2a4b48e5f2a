package util

import "strings"

// NormalizeNIP strips the separators commonly typed into a Polish tax ID
// (spaces and dashes), leaving only the raw digit string.
func NormalizeNIP(nip string) string {
	var b strings.Builder
	for _, r := range nip {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateNIP reports whether the value normalizes to exactly 10 digits.
// Orders that request an invoice must carry a valid NIP.
func ValidateNIP(nip string) bool {
	normalized := NormalizeNIP(nip)
	if len(normalized) != 10 {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
