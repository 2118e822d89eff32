// models/level.go
package models

import "time"

// XP transaction source types.
const (
	XpSourceMissionAchievement = "MISSION_ACHIEVEMENT"
	XpSourceMissionCancel      = "MISSION_CANCELLATION"
	XpSourcePosting            = "POSTING"
	XpSourceBonus              = "BONUS"
)

// UserLevel holds a user's cumulative XP within one season. Level is
// derived from XP and stored denormalized for ranking queries.
type UserLevel struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_levels_user_season" json:"user_id"`
	SeasonID uint `gorm:"not null;uniqueIndex:idx_user_levels_user_season" json:"season_id"`
	XP       int  `gorm:"default:0" json:"xp"`
	Level    int  `gorm:"default:1" json:"level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// XpTransaction is the append-only ledger every XP change flows through.
type XpTransaction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	SeasonID    uint   `gorm:"not null;index" json:"season_id"`
	XpAmount    int    `gorm:"not null" json:"xp_amount"` // negative on cancellation
	SourceType  string `gorm:"not null;size:30;index" json:"source_type"`
	SourceID    *uint  `gorm:"index" json:"source_id,omitempty"` // achievement id for mission sources
	Description string `json:"description"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (UserLevel) TableName() string {
	return "user_levels"
}

func (XpTransaction) TableName() string {
	return "xp_transactions"
}
