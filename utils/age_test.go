package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseBirthDate(s)
	require.NoError(t, err)
	return d
}

func TestCalculateAgeAt(t *testing.T) {
	now := mustDate(t, "2026-06-15")

	tests := []struct {
		birth string
		want  int
	}{
		{"2008-06-15", 18}, // birthday today counts as turned
		{"2008-06-16", 17}, // birthday tomorrow
		{"2008-06-14", 18},
		{"2008-12-31", 17},
		{"2000-01-01", 26},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateAgeAt(mustDate(t, tt.birth), now), "birth=%s", tt.birth)
	}
}

func TestValidateAgeAt_Adult(t *testing.T) {
	now := mustDate(t, "2026-06-15")

	assert.Nil(t, ValidateAgeAt(mustDate(t, "2008-06-15"), now))
	assert.Nil(t, ValidateAgeAt(mustDate(t, "1990-01-01"), now))
}

func TestValidateAgeAt_AlmostEighteen(t *testing.T) {
	now := mustDate(t, "2026-06-15")

	// 17, turning 18 within a year: もうすぐ phrasing
	msg := ValidateAgeAt(mustDate(t, "2008-06-16"), now)
	require.NotNil(t, msg)
	assert.Equal(t, "18歳以上の方のみご登録いただけます。もうすぐ登録できますので、その日を楽しみにお待ちください！", *msg)
}

func TestValidateAgeAt_YearsToWait(t *testing.T) {
	now := mustDate(t, "2026-01-01")

	// Born 2010-06-01: 15 years old, 3 years until eligibility
	msg := ValidateAgeAt(mustDate(t, "2010-06-01"), now)
	require.NotNil(t, msg)
	assert.Equal(t, "18歳以上の方のみご登録いただけます。あと3年で登録できますので、その日を楽しみにお待ちください！", *msg)
}

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("2008-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2008, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())

	_, err = ParseBirthDate("15/06/2008")
	assert.Error(t, err)
	_, err = ParseBirthDate("")
	assert.Error(t, err)
}
