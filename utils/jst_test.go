package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJSTMidnight(t *testing.T) {
	// 2026-06-15 16:30 UTC is 2026-06-16 01:30 JST
	utc := time.Date(2026, 6, 15, 16, 30, 0, 0, time.UTC)
	midnight := JSTMidnight(utc)

	assert.Equal(t, 2026, midnight.Year())
	assert.Equal(t, time.June, midnight.Month())
	assert.Equal(t, 16, midnight.Day())
	assert.Equal(t, 0, midnight.Hour())

	// 14:59 UTC is still the same JST day
	earlier := time.Date(2026, 6, 15, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, 15, JSTMidnight(earlier).Day())
}

func TestJSTToday(t *testing.T) {
	utc := time.Date(2026, 6, 15, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-16", JSTToday(utc))

	earlier := time.Date(2026, 6, 15, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-06-15", JSTToday(earlier))
}
