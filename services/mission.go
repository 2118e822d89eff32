// services/mission.go - mission achievement flow
package services

import (
	"errors"
	"fmt"
	"time"

	"actionboard/models"
	"actionboard/utils"

	"gorm.io/gorm"
)

var (
	ErrMissionNotFound       = errors.New("mission not found")
	ErrAchievementNotFound   = errors.New("achievement not found")
	ErrNotAchievementOwner   = errors.New("achievement belongs to another user")
	ErrAchievementLimit      = errors.New("mission achievement limit reached")
	ErrDailyAchievementLimit = errors.New("mission daily achievement limit reached")
	ErrArtifactRequired      = errors.New("mission requires an artifact")
)

// ArtifactInput is the proof submitted with an achievement.
type ArtifactInput struct {
	TextContent *string
	ImageURL    *string
	Description string
	Lat         *float64
	Long        *float64
}

// PostingInput reports a leafleting run for POSTING missions.
type PostingInput struct {
	Count int
	Lat   *float64
	Long  *float64
}

// AchieveMission records a mission completion: limit checks, the
// achievement row, its artifact and the XP grant, all in one
// transaction.
func AchieveMission(db *gorm.DB, userID, missionID, seasonID uint, artifact *ArtifactInput, posting *PostingInput) (*models.Achievement, *models.UserLevel, error) {
	var mission models.Mission
	if err := db.First(&mission, missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMissionNotFound
		}
		return nil, nil, fmt.Errorf("failed to load mission: %w", err)
	}

	if mission.RequiredArtifactType != models.ArtifactTypeNone && artifact == nil && posting == nil {
		return nil, nil, ErrArtifactRequired
	}

	var achievement models.Achievement
	var level models.UserLevel

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkAchievementLimits(tx, &mission, userID, seasonID); err != nil {
			return err
		}

		achievement = models.Achievement{
			UserID:    userID,
			MissionID: missionID,
			SeasonID:  seasonID,
		}
		if err := tx.Create(&achievement).Error; err != nil {
			return fmt.Errorf("failed to create achievement: %w", err)
		}

		if artifact != nil {
			row := models.MissionArtifact{
				AchievementID: achievement.ID,
				UserID:        userID,
				ArtifactType:  mission.RequiredArtifactType,
				TextContent:   artifact.TextContent,
				ImageURL:      artifact.ImageURL,
				Description:   artifact.Description,
				Lat:           artifact.Lat,
				Long:          artifact.Long,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create artifact: %w", err)
			}
		}

		if posting != nil {
			event := models.PostingEvent{
				UserID:        userID,
				AchievementID: achievement.ID,
				Count:         posting.Count,
				Lat:           posting.Lat,
				Long:          posting.Long,
			}
			if err := tx.Create(&event).Error; err != nil {
				return fmt.Errorf("failed to create posting event: %w", err)
			}
		}

		achID := achievement.ID
		xp := utils.MissionXp(mission.Difficulty)
		updated, err := GrantXp(tx, userID, seasonID, xp, models.XpSourceMissionAchievement, &achID, mission.Title)
		if err != nil {
			return err
		}
		level = *updated
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	achievement.Mission = &mission
	return &achievement, &level, nil
}

func checkAchievementLimits(tx *gorm.DB, mission *models.Mission, userID, seasonID uint) error {
	if mission.MaxAchievementCount != nil {
		var count int64
		err := tx.Model(&models.Achievement{}).
			Where("user_id = ? AND mission_id = ? AND season_id = ?", userID, mission.ID, seasonID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to count achievements: %w", err)
		}
		if count >= int64(*mission.MaxAchievementCount) {
			return ErrAchievementLimit
		}
	}

	if mission.MaxDailyAchievementCount != nil {
		dayStart := utils.JSTMidnight(time.Now())
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		err := tx.Model(&models.Achievement{}).
			Where("user_id = ? AND mission_id = ? AND season_id = ? AND created_at >= ? AND created_at < ?",
				userID, mission.ID, seasonID, dayStart.UTC(), dayEnd.UTC()).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to count daily achievements: %w", err)
		}
		if count >= int64(*mission.MaxDailyAchievementCount) {
			return ErrDailyAchievementLimit
		}
	}

	return nil
}

// CancelAchievement removes a user's own achievement and reverses its
// XP. Artifacts cascade with the achievement row.
func CancelAchievement(db *gorm.DB, userID, achievementID uint) (*models.UserLevel, error) {
	var achievement models.Achievement
	if err := db.First(&achievement, achievementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to load achievement: %w", err)
	}

	if achievement.UserID != userID {
		return nil, ErrNotAchievementOwner
	}

	var level models.UserLevel
	err := db.Transaction(func(tx *gorm.DB) error {
		updated, err := RevokeAchievementXp(tx, userID, achievement.SeasonID, achievement.ID)
		if err != nil {
			return err
		}
		level = *updated

		if err := tx.Where("achievement_id = ?", achievement.ID).Delete(&models.MissionArtifact{}).Error; err != nil {
			return fmt.Errorf("failed to delete artifacts: %w", err)
		}
		if err := tx.Where("achievement_id = ?", achievement.ID).Delete(&models.PostingEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete posting events: %w", err)
		}
		if err := tx.Delete(&achievement).Error; err != nil {
			return fmt.Errorf("failed to delete achievement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &level, nil
}
