// services/referral.go - friend referral validation and crediting
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"actionboard/models"
	"actionboard/utils"

	"gorm.io/gorm"
)

var ErrReferralMissionMissing = errors.New("referral mission not configured")

// Unambiguous alphabet: no 0/O, 1/I/L
const referralAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const referralCodeLength = 8

// GenerateReferralCode returns a fresh code not yet owned by any user.
func GenerateReferralCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomReferralCode()
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}

func randomReferralCode() (string, error) {
	var sb strings.Builder
	for i := 0; i < referralCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralAlphabet))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(referralAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// IsValidReferralCode reports whether a non-deleted user owns the code.
func IsValidReferralCode(db *gorm.DB, code string) (bool, *models.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil, nil
	}

	var referrer models.User
	err := db.Where("referral_code = ? AND is_deleted = ?", code, false).First(&referrer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to look up referral code: %w", err)
	}
	return true, &referrer, nil
}

// IsEmailAlreadyUsedInReferral checks whether this email was already
// credited to any referrer, so one address can't be claimed twice.
// Comparison is case-insensitive on the stored lowercase form.
func IsEmailAlreadyUsedInReferral(db *gorm.DB, email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return false, nil
	}

	var count int64
	err := db.Model(&models.MissionArtifact{}).
		Where("artifact_type = ? AND text_content = ?", models.ArtifactTypeReferral, normalized).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check referral email: %w", err)
	}
	return count > 0, nil
}

// CreditReferral awards the referrer one referral-mission achievement
// for the new signup. The achievement, its artifact (the referred email,
// lowercased) and the XP grant commit in one transaction.
func CreditReferral(db *gorm.DB, referrer *models.User, referredEmail string, seasonID uint) error {
	var mission models.Mission
	err := db.Where("required_artifact_type = ?", models.ArtifactTypeReferral).First(&mission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferralMissionMissing
		}
		return fmt.Errorf("failed to load referral mission: %w", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(referredEmail))

	return db.Transaction(func(tx *gorm.DB) error {
		achievement := models.Achievement{
			UserID:    referrer.ID,
			MissionID: mission.ID,
			SeasonID:  seasonID,
		}
		if err := tx.Create(&achievement).Error; err != nil {
			return fmt.Errorf("failed to create referral achievement: %w", err)
		}

		artifact := models.MissionArtifact{
			AchievementID: achievement.ID,
			UserID:        referrer.ID,
			ArtifactType:  models.ArtifactTypeReferral,
			TextContent:   &normalized,
			Description:   "友達紹介",
		}
		if err := tx.Create(&artifact).Error; err != nil {
			return fmt.Errorf("failed to create referral artifact: %w", err)
		}

		achID := achievement.ID
		xp := utils.MissionXp(mission.Difficulty)
		if _, err := GrantXp(tx, referrer.ID, seasonID, xp, models.XpSourceMissionAchievement, &achID, mission.Title); err != nil {
			return err
		}
		return nil
	})
}
