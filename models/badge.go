// models/badge.go
package models

import (
	"fmt"
	"time"
)

// BadgeType is the closed set of ranking categories a badge can belong to.
type BadgeType string

const (
	BadgeTypeAll        BadgeType = "ALL"
	BadgeTypeDaily      BadgeType = "DAILY"
	BadgeTypePrefecture BadgeType = "PREFECTURE"
	BadgeTypeMission    BadgeType = "MISSION"
)

// ParseBadgeType rejects anything outside the four known categories.
func ParseBadgeType(s string) (BadgeType, error) {
	switch BadgeType(s) {
	case BadgeTypeAll, BadgeTypeDaily, BadgeTypePrefecture, BadgeTypeMission:
		return BadgeType(s), nil
	}
	return "", fmt.Errorf("unknown badge type: %q", s)
}

// Label returns the display name for a badge category.
func (t BadgeType) Label() (string, error) {
	switch t {
	case BadgeTypeAll:
		return "総合ランキング", nil
	case BadgeTypeDaily:
		return "デイリーランキング", nil
	case BadgeTypePrefecture:
		return "都道府県ランキング", nil
	case BadgeTypeMission:
		return "ミッションランキング", nil
	}
	return "", fmt.Errorf("unknown badge type: %q", t)
}

// BadgeTier maps a rank to its display tier. Not stored; presentation only.
func BadgeTier(rank int) string {
	switch {
	case rank <= 10:
		return "gold"
	case rank <= 50:
		return "silver"
	default:
		return "bronze"
	}
}

// BadgeEmoji returns the medal shown next to a badge.
func BadgeEmoji(rank int) string {
	switch {
	case rank <= 10:
		return "🥇"
	case rank <= 50:
		return "🥈"
	default:
		return "🥉"
	}
}

// UserBadge is a rank-based recognition token, recomputed by the badge
// batch job and upserted per (user, badge_type, sub_type, season).
type UserBadge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_badges_key" json:"user_id"`
	BadgeType  BadgeType `gorm:"not null;size:20;uniqueIndex:idx_user_badges_key" json:"badge_type"`
	SubType    *string   `gorm:"size:100;uniqueIndex:idx_user_badges_key" json:"sub_type"` // prefecture name or mission slug
	SeasonID   uint      `gorm:"not null;uniqueIndex:idx_user_badges_key" json:"season_id"`
	Rank       int       `gorm:"not null" json:"rank"` // 1-based, best rank achieved
	IsNotified bool      `gorm:"default:false" json:"is_notified"`
	AchievedAt time.Time `json:"achieved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
