// utils/privacy.go
package utils

import "strings"

// MaskUsername keeps the first rune and masks the rest, preserving length.
// "shota" -> "sxxxx"; empty input stays empty.
func MaskUsername(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteRune(runes[0])
	for range runes[1:] {
		b.WriteByte('x')
	}
	return b.String()
}
