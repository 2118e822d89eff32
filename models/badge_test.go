package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBadgeType(t *testing.T) {
	for _, s := range []string{"ALL", "DAILY", "PREFECTURE", "MISSION"} {
		parsed, err := ParseBadgeType(s)
		require.NoError(t, err)
		assert.Equal(t, BadgeType(s), parsed)
	}

	for _, s := range []string{"", "all", "WEEKLY", "GLOBAL"} {
		_, err := ParseBadgeType(s)
		assert.Error(t, err, "input=%q", s)
	}
}

func TestBadgeTypeLabel(t *testing.T) {
	label, err := BadgeTypeAll.Label()
	require.NoError(t, err)
	assert.Equal(t, "総合ランキング", label)

	label, err = BadgeTypeDaily.Label()
	require.NoError(t, err)
	assert.Equal(t, "デイリーランキング", label)

	_, err = BadgeType("WEEKLY").Label()
	assert.Error(t, err)
}

func TestBadgeTier(t *testing.T) {
	assert.Equal(t, "gold", BadgeTier(1))
	assert.Equal(t, "gold", BadgeTier(10))
	assert.Equal(t, "silver", BadgeTier(11))
	assert.Equal(t, "silver", BadgeTier(50))
	assert.Equal(t, "bronze", BadgeTier(51))
	assert.Equal(t, "bronze", BadgeTier(100))
}

func TestBadgeEmoji(t *testing.T) {
	assert.Equal(t, "🥇", BadgeEmoji(10))
	assert.Equal(t, "🥈", BadgeEmoji(11))
	assert.Equal(t, "🥉", BadgeEmoji(99))
}
