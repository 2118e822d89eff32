package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/avatar.png"))
	assert.True(t, IsValidURL("http://localhost:3000/x"))

	assert.False(t, IsValidURL(""))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("javascript:alert(1)"))
	assert.False(t, IsValidURL("/relative/path"))
	assert.False(t, IsValidURL("https://"))
}

func TestValidateReturnURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		// Accepted
		{"root", "/", "/"},
		{"plain path", "/missions", "/missions"},
		{"nested path", "/missions/42", "/missions/42"},
		{"query string", "/missions?tab=done", "/missions?tab=done"},
		{"fragment", "/map#tokyo", "/map#tokyo"},
		{"surrounding whitespace trimmed", "  /missions  ", "/missions"},

		// Rejected
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"no leading slash", "missions", ""},
		{"absolute url", "https://evil.example/", ""},
		{"protocol relative", "//evil.example/path", ""},
		{"double slash inside", "/a//b", ""},
		{"backslash", "/a\\b", ""},
		{"encoded null lowercase", "/a%00b", ""},
		{"encoded null uppercase", "/a%00B", ""},
		{"newline", "/a\nb", ""},
		{"carriage return", "/a\rb", ""},
		{"raw null", "/a\x00b", ""},
		{"colon in path", "/js:alert(1)", ""},
		{"scheme smuggled", "/javascript:alert(1)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateReturnURL(tt.in))
		})
	}
}

func TestValidateReturnURL_ColonAfterQueryAllowed(t *testing.T) {
	// Colons inside the query string are harmless
	assert.Equal(t, "/search?time=12:30", ValidateReturnURL("/search?time=12:30"))
	assert.Equal(t, "/map#pos:35.6", ValidateReturnURL("/map#pos:35.6"))
}
