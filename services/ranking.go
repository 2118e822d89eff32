// services/ranking.go - season-scoped leaderboards
package services

import (
	"fmt"
	"time"

	"actionboard/utils"

	"gorm.io/gorm"
)

// RankingEntry is one leaderboard row. Score is XP for the overall,
// daily and prefecture boards, and the achievement count for per-mission
// boards.
type RankingEntry struct {
	Rank              int    `json:"rank"`
	UserID            uint   `json:"user_id"`
	Name              string `json:"name"`
	AddressPrefecture string `json:"address_prefecture"`
	Level             int    `json:"level"`
	Score             int    `json:"score"`
}

const defaultRankingLimit = 100

func clampLimit(limit int) int {
	if limit <= 0 || limit > defaultRankingLimit {
		return defaultRankingLimit
	}
	return limit
}

// GetOverallRanking reads the season leaderboard from user_ranking_view.
func GetOverallRanking(db *gorm.DB, seasonID uint, limit int) ([]RankingEntry, error) {
	var entries []RankingEntry
	err := db.Raw(`
		SELECT rank, user_id, name, address_prefecture, level, xp AS score
		FROM user_ranking_view
		WHERE season_id = ?
		ORDER BY rank
		LIMIT ?
	`, seasonID, clampLimit(limit)).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query overall ranking: %w", err)
	}
	return entries, nil
}

// GetDailyRanking sums today's ledger entries per user. "Today" is the
// JST calendar day regardless of server timezone.
func GetDailyRanking(db *gorm.DB, seasonID uint, limit int) ([]RankingEntry, error) {
	dayStart := utils.JSTMidnight(time.Now())
	dayEnd := dayStart.Add(24 * time.Hour)

	var entries []RankingEntry
	err := db.Raw(`
		SELECT
			ROW_NUMBER() OVER (ORDER BY SUM(t.xp_amount) DESC, MIN(t.created_at) ASC, t.user_id ASC) AS rank,
			t.user_id,
			u.name,
			u.address_prefecture,
			COALESCE(ul.level, 1) AS level,
			SUM(t.xp_amount) AS score
		FROM xp_transactions t
		JOIN users u ON u.id = t.user_id AND u.is_deleted = false
		LEFT JOIN user_levels ul ON ul.user_id = t.user_id AND ul.season_id = t.season_id
		WHERE t.season_id = ?
		  AND t.created_at >= ? AND t.created_at < ?
		GROUP BY t.user_id, u.name, u.address_prefecture, ul.level
		HAVING SUM(t.xp_amount) > 0
		ORDER BY rank
		LIMIT ?
	`, seasonID, dayStart.UTC(), dayEnd.UTC(), clampLimit(limit)).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query daily ranking: %w", err)
	}
	return entries, nil
}

// GetPrefectureRanking ranks users registered in one prefecture by
// season XP.
func GetPrefectureRanking(db *gorm.DB, seasonID uint, prefecture string, limit int) ([]RankingEntry, error) {
	var entries []RankingEntry
	err := db.Raw(`
		SELECT
			ROW_NUMBER() OVER (ORDER BY ul.xp DESC, ul.updated_at ASC, ul.user_id ASC) AS rank,
			ul.user_id,
			u.name,
			u.address_prefecture,
			ul.level,
			ul.xp AS score
		FROM user_levels ul
		JOIN users u ON u.id = ul.user_id AND u.is_deleted = false
		WHERE ul.season_id = ? AND u.address_prefecture = ?
		ORDER BY rank
		LIMIT ?
	`, seasonID, prefecture, clampLimit(limit)).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query prefecture ranking: %w", err)
	}
	return entries, nil
}

// GetMissionRanking ranks users by achievement count for one mission.
func GetMissionRanking(db *gorm.DB, seasonID, missionID uint, limit int) ([]RankingEntry, error) {
	var entries []RankingEntry
	err := db.Raw(`
		SELECT
			ROW_NUMBER() OVER (ORDER BY COUNT(a.id) DESC, MIN(a.created_at) ASC, a.user_id ASC) AS rank,
			a.user_id,
			u.name,
			u.address_prefecture,
			COALESCE(ul.level, 1) AS level,
			COUNT(a.id) AS score
		FROM achievements a
		JOIN users u ON u.id = a.user_id AND u.is_deleted = false
		LEFT JOIN user_levels ul ON ul.user_id = a.user_id AND ul.season_id = a.season_id
		WHERE a.season_id = ? AND a.mission_id = ?
		GROUP BY a.user_id, u.name, u.address_prefecture, ul.level
		ORDER BY rank
		LIMIT ?
	`, seasonID, missionID, clampLimit(limit)).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query mission ranking: %w", err)
	}
	return entries, nil
}

// GetUserRank returns a user's overall position in the season, or 0 when
// the user has no XP row yet.
func GetUserRank(db *gorm.DB, seasonID, userID uint) (int, error) {
	var rank int
	err := db.Raw(`
		SELECT COALESCE(MAX(rank), 0)
		FROM user_ranking_view
		WHERE season_id = ? AND user_id = ?
	`, seasonID, userID).Scan(&rank).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query user rank: %w", err)
	}
	return rank, nil
}
