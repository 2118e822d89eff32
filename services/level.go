// services/level.go - XP ledger and level progression
package services

import (
	"errors"
	"fmt"

	"actionboard/models"
	"actionboard/utils"

	"gorm.io/gorm"
)

// GrantXp appends a ledger entry and folds it into the user's season
// total. Ledger write and level update commit together or not at all.
func GrantXp(db *gorm.DB, userID, seasonID uint, amount int, sourceType string, sourceID *uint, description string) (*models.UserLevel, error) {
	var result models.UserLevel

	err := db.Transaction(func(tx *gorm.DB) error {
		entry := models.XpTransaction{
			UserID:      userID,
			SeasonID:    seasonID,
			XpAmount:    amount,
			SourceType:  sourceType,
			SourceID:    sourceID,
			Description: description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record xp transaction: %w", err)
		}

		level, err := getOrInitUserLevel(tx, userID, seasonID)
		if err != nil {
			return err
		}

		newXp := level.XP + amount
		if newXp < 0 {
			newXp = 0
		}

		level.XP = newXp
		level.Level = utils.CalculateLevel(newXp)
		if err := tx.Save(level).Error; err != nil {
			return fmt.Errorf("failed to update user level: %w", err)
		}

		result = *level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokeAchievementXp reverses everything previously granted for an
// achievement by appending a negative ledger entry of the same size.
// The original entries are never touched.
func RevokeAchievementXp(db *gorm.DB, userID, seasonID, achievementID uint) (*models.UserLevel, error) {
	var total int64
	err := db.Model(&models.XpTransaction{}).
		Where("user_id = ? AND season_id = ? AND source_id = ? AND source_type IN ?",
			userID, seasonID, achievementID,
			[]string{models.XpSourceMissionAchievement, models.XpSourcePosting}).
		Select("COALESCE(SUM(xp_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum achievement xp: %w", err)
	}

	if total <= 0 {
		// Nothing to reverse; return current state
		return GetUserLevel(db, userID, seasonID)
	}

	srcID := achievementID
	return GrantXp(db, userID, seasonID, -int(total), models.XpSourceMissionCancel, &srcID, "ミッション達成の取り消し")
}

// GetUserLevel returns the user's season progress, initializing the row
// at level 1 / 0 XP on first access.
func GetUserLevel(db *gorm.DB, userID, seasonID uint) (*models.UserLevel, error) {
	var level *models.UserLevel
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		level, txErr = getOrInitUserLevel(tx, userID, seasonID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

func getOrInitUserLevel(tx *gorm.DB, userID, seasonID uint) (*models.UserLevel, error) {
	var level models.UserLevel
	err := tx.Where("user_id = ? AND season_id = ?", userID, seasonID).First(&level).Error
	if err == nil {
		return &level, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load user level: %w", err)
	}

	level = models.UserLevel{
		UserID:   userID,
		SeasonID: seasonID,
		XP:       0,
		Level:    1,
	}
	if err := tx.Create(&level).Error; err != nil {
		return nil, fmt.Errorf("failed to init user level: %w", err)
	}
	return &level, nil
}

// LevelProgressInfo is the progress payload shown on the profile screen.
type LevelProgressInfo struct {
	Level         int     `json:"level"`
	XP            int     `json:"xp"`
	XpToNextLevel int     `json:"xp_to_next_level"`
	Progress      float64 `json:"progress"`
}

func BuildLevelProgress(level *models.UserLevel) LevelProgressInfo {
	return LevelProgressInfo{
		Level:         level.Level,
		XP:            level.XP,
		XpToNextLevel: utils.XpToNextLevel(level.XP),
		Progress:      utils.LevelProgress(level.XP),
	}
}
