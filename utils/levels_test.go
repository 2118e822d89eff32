package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXpDelta(t *testing.T) {
	assert.Equal(t, 40, XpDelta(1))
	assert.Equal(t, 55, XpDelta(2))
	assert.Equal(t, 70, XpDelta(3))
	assert.Equal(t, 175, XpDelta(10))

	// Below-range levels clamp to level 1
	assert.Equal(t, 40, XpDelta(0))
	assert.Equal(t, 40, XpDelta(-5))
}

func TestTotalXp(t *testing.T) {
	assert.Equal(t, 0, TotalXp(1))
	assert.Equal(t, 40, TotalXp(2))
	assert.Equal(t, 95, TotalXp(3))
	assert.Equal(t, 165, TotalXp(4))

	assert.Equal(t, 0, TotalXp(0))
}

func TestTotalXpMatchesDeltaSum(t *testing.T) {
	// Closed form must agree with summing the per-level deltas
	sum := 0
	for level := 1; level <= 200; level++ {
		assert.Equal(t, sum, TotalXp(level), "level %d", level)
		sum += XpDelta(level)
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{-100, 1},
		{0, 1},
		{39, 1},
		{40, 2},
		{94, 2},
		{95, 3},
		{164, 3},
		{165, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestCalculateLevelBoundaries(t *testing.T) {
	// Exactly TotalXp(L) XP must mean level L, one less means L-1
	for level := 2; level <= 100; level++ {
		threshold := TotalXp(level)
		assert.Equal(t, level, CalculateLevel(threshold))
		assert.Equal(t, level-1, CalculateLevel(threshold-1))
	}
}

func TestCalculateLevelMonotonic(t *testing.T) {
	prev := 1
	for xp := 0; xp <= 5000; xp++ {
		level := CalculateLevel(xp)
		assert.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		prev = level
	}
}

func TestCalculateLevelCap(t *testing.T) {
	assert.Equal(t, MaxLevel, CalculateLevel(TotalXp(MaxLevel)+1_000_000_000))
}

func TestXpToNextLevel(t *testing.T) {
	assert.Equal(t, 40, XpToNextLevel(0))
	assert.Equal(t, 1, XpToNextLevel(39))
	assert.Equal(t, 55, XpToNextLevel(40))
}

func TestLevelProgress(t *testing.T) {
	assert.InDelta(t, 0.0, LevelProgress(0), 1e-9)
	assert.InDelta(t, 0.5, LevelProgress(20), 1e-9)
	assert.InDelta(t, 0.0, LevelProgress(40), 1e-9) // fresh level 2

	for xp := 0; xp <= 2000; xp += 7 {
		p := LevelProgress(xp)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestMissionXp(t *testing.T) {
	assert.Equal(t, 50, MissionXp(1))
	assert.Equal(t, 100, MissionXp(2))
	assert.Equal(t, 200, MissionXp(3))
	assert.Equal(t, 400, MissionXp(4))

	// Out-of-range difficulties fall back to the one-star reward
	assert.Equal(t, 50, MissionXp(0))
	assert.Equal(t, 50, MissionXp(5))
}
