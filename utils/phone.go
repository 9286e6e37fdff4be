// File: utils/phone.go
package utils

import "strings"

// NormalizeSender reduces a raw transport sender identifier to bare digits.
// Strips the "whatsapp:" channel prefix and the leading "+" so the same
// caller always maps to the same session key.
func NormalizeSender(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "whatsapp:")
	s = strings.TrimPrefix(s, "+")
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
