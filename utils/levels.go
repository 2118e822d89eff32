// utils/levels.go - XP curve and level derivation
package utils

// MaxLevel caps the level scan so a corrupt XP value cannot loop forever.
const MaxLevel = 1000

// XpDelta returns the XP needed to go from level L to L+1.
// The curve is linear: 40 at level 1, +15 per level after that.
func XpDelta(level int) int {
	if level < 1 {
		level = 1
	}
	return 40 + 15*(level-1)
}

// TotalXp returns the cumulative XP required to reach level L.
// Closed form of summing XpDelta over 1..L-1; the product is always even.
func TotalXp(level int) int {
	if level < 1 {
		level = 1
	}
	return (level - 1) * (50 + 15*level) / 2
}

// CalculateLevel derives the level for a cumulative XP value. Level starts
// at 1 and is non-decreasing in XP; negative XP clamps to level 1.
func CalculateLevel(xp int) int {
	if xp < 0 {
		return 1
	}
	for level := 1; level <= MaxLevel; level++ {
		if xp < TotalXp(level+1) {
			return level
		}
	}
	return MaxLevel
}

// XpToNextLevel returns the XP still needed to reach the next level.
func XpToNextLevel(xp int) int {
	level := CalculateLevel(xp)
	remaining := TotalXp(level+1) - xp
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LevelProgress returns how far into the current level the user is, 0 to 1.
func LevelProgress(xp int) float64 {
	level := CalculateLevel(xp)
	span := XpDelta(level)
	progress := float64(span-XpToNextLevel(xp)) / float64(span)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// MissionXp maps a mission's star difficulty to the XP it grants.
func MissionXp(difficulty int) int {
	switch difficulty {
	case 1:
		return 50
	case 2:
		return 100
	case 3:
		return 200
	case 4:
		return 400
	default:
		return 50
	}
}
