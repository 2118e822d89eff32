// services/badgecalc.go - rank badge recomputation
//
// Recomputes all four badge categories from the current season rankings.
// Badges only ever improve: a worse rank than the stored one leaves the
// badge untouched, so running the batch twice in a row is a no-op.
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"actionboard/models"

	"gorm.io/gorm"
)

// Only the top slice of each ranking earns a badge.
const badgeRankCutoff = 100

// BadgeCalcSummary reports how many badges each category pass touched.
type BadgeCalcSummary struct {
	SeasonID   uint `json:"season_id"`
	All        int  `json:"all"`
	Daily      int  `json:"daily"`
	Prefecture int  `json:"prefecture"`
	Mission    int  `json:"mission"`
}

func (s BadgeCalcSummary) Total() int {
	return s.All + s.Daily + s.Prefecture + s.Mission
}

type badgeAction int

const (
	badgeActionNone badgeAction = iota
	badgeActionCreate
	badgeActionImprove
)

// decideBadgeAction is the improve-only upsert rule. A new holder gets a
// badge; an existing holder keeps theirs unless the new rank is strictly
// better.
func decideBadgeAction(existing *models.UserBadge, newRank int) badgeAction {
	if newRank < 1 || newRank > badgeRankCutoff {
		return badgeActionNone
	}
	if existing == nil {
		return badgeActionCreate
	}
	if newRank < existing.Rank {
		return badgeActionImprove
	}
	return badgeActionNone
}

// CalculateAllBadges runs every category pass for the season and returns
// the per-category updated counts. Passes are independent; one failing
// category aborts the run with the counts so far discarded.
func CalculateAllBadges(db *gorm.DB, seasonID uint) (*BadgeCalcSummary, error) {
	summary := &BadgeCalcSummary{SeasonID: seasonID}

	n, err := calculateOverallBadges(db, seasonID)
	if err != nil {
		return nil, fmt.Errorf("overall badge pass failed: %w", err)
	}
	summary.All = n

	n, err = calculateDailyBadges(db, seasonID)
	if err != nil {
		return nil, fmt.Errorf("daily badge pass failed: %w", err)
	}
	summary.Daily = n

	n, err = calculatePrefectureBadges(db, seasonID)
	if err != nil {
		return nil, fmt.Errorf("prefecture badge pass failed: %w", err)
	}
	summary.Prefecture = n

	n, err = calculateMissionBadges(db, seasonID)
	if err != nil {
		return nil, fmt.Errorf("mission badge pass failed: %w", err)
	}
	summary.Mission = n

	return summary, nil
}

func calculateOverallBadges(db *gorm.DB, seasonID uint) (int, error) {
	entries, err := GetOverallRanking(db, seasonID, badgeRankCutoff)
	if err != nil {
		return 0, err
	}
	return upsertBadges(db, seasonID, models.BadgeTypeAll, nil, entries)
}

func calculateDailyBadges(db *gorm.DB, seasonID uint) (int, error) {
	entries, err := GetDailyRanking(db, seasonID, badgeRankCutoff)
	if err != nil {
		return 0, err
	}
	// One DAILY badge per user per season, improve-only across days.
	return upsertBadges(db, seasonID, models.BadgeTypeDaily, nil, entries)
}

func calculatePrefectureBadges(db *gorm.DB, seasonID uint) (int, error) {
	// Only prefectures with at least one ranked user matter; iterating
	// the full list keeps the pass simple and the empty ones cost one
	// indexed query each.
	updated := 0
	for _, prefecture := range models.Prefectures {
		entries, err := GetPrefectureRanking(db, seasonID, prefecture, badgeRankCutoff)
		if err != nil {
			return updated, err
		}
		if len(entries) == 0 {
			continue
		}
		pref := prefecture
		n, err := upsertBadges(db, seasonID, models.BadgeTypePrefecture, &pref, entries)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

func calculateMissionBadges(db *gorm.DB, seasonID uint) (int, error) {
	// Only repeatable missions get a ranking; a capped mission would
	// rank everyone at the same count.
	var missions []models.Mission
	if err := db.Where("is_hidden = ? AND max_achievement_count IS NULL", false).Find(&missions).Error; err != nil {
		return 0, err
	}

	updated := 0
	for _, mission := range missions {
		entries, err := GetMissionRanking(db, seasonID, mission.ID, badgeRankCutoff)
		if err != nil {
			return updated, err
		}
		if len(entries) == 0 {
			continue
		}
		slug := mission.Slug
		n, err := upsertBadges(db, seasonID, models.BadgeTypeMission, &slug, entries)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

func upsertBadges(db *gorm.DB, seasonID uint, badgeType models.BadgeType, subType *string, entries []RankingEntry) (int, error) {
	updated := 0
	for _, entry := range entries {
		changed, err := upsertBadge(db, seasonID, badgeType, subType, entry.UserID, entry.Rank)
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}

func upsertBadge(db *gorm.DB, seasonID uint, badgeType models.BadgeType, subType *string, userID uint, rank int) (bool, error) {
	query := db.Where("user_id = ? AND badge_type = ? AND season_id = ?", userID, badgeType, seasonID)
	if subType == nil {
		query = query.Where("sub_type IS NULL")
	} else {
		query = query.Where("sub_type = ?", *subType)
	}

	var existing models.UserBadge
	err := query.First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to load badge: %w", err)
	}

	var current *models.UserBadge
	if err == nil {
		current = &existing
	}

	switch decideBadgeAction(current, rank) {
	case badgeActionCreate:
		badge := models.UserBadge{
			UserID:     userID,
			BadgeType:  badgeType,
			SubType:    subType,
			SeasonID:   seasonID,
			Rank:       rank,
			IsNotified: false,
			AchievedAt: time.Now().UTC(),
		}
		if err := db.Create(&badge).Error; err != nil {
			return false, fmt.Errorf("failed to create badge: %w", err)
		}
		return true, nil

	case badgeActionImprove:
		err := db.Model(&existing).Updates(map[string]interface{}{
			"rank":        rank,
			"is_notified": false,
			"achieved_at": time.Now().UTC(),
		}).Error
		if err != nil {
			return false, fmt.Errorf("failed to update badge: %w", err)
		}
		return true, nil
	}

	return false, nil
}

// RunBadgeCalculation resolves the active season and runs the full
// batch, logging the per-category outcome. Used by the admin endpoint.
func RunBadgeCalculation(db *gorm.DB) (*BadgeCalcSummary, error) {
	season, err := GetCurrentSeason(db)
	if err != nil {
		return nil, err
	}

	summary, err := CalculateAllBadges(db, season.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Badge calculation done (season=%d): all=%d daily=%d prefecture=%d mission=%d",
		season.ID, summary.All, summary.Daily, summary.Prefecture, summary.Mission)
	return summary, nil
}
