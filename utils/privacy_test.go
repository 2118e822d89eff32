package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMaskUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shota", "sxxxx"},
		{"a", "a"},
		{"", ""},
		{"ab", "ax"},
		{"たろう", "たxx"}, // multibyte first rune survives intact
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskUsername(tt.in), "in=%q", tt.in)
	}
}

func TestMaskUsernamePreservesRuneCount(t *testing.T) {
	for _, name := range []string{"shota", "やまだたろう", "x", "日本語とlatin混在"} {
		masked := MaskUsername(name)
		assert.Equal(t, utf8.RuneCountInString(name), utf8.RuneCountInString(masked), "in=%q", name)
	}
}
