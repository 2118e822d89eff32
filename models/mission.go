// models/mission.go
package models

import "time"

// Artifact types a mission can require as proof of completion.
const (
	ArtifactTypeNone     = "NONE"
	ArtifactTypeText     = "TEXT"
	ArtifactTypeEmail    = "EMAIL"
	ArtifactTypeLink     = "LINK"
	ArtifactTypeImage    = "IMAGE"
	ArtifactTypeImageGeo = "IMAGE_GEO"
	ArtifactTypeReferral = "REFERRAL"
	ArtifactTypePosting  = "POSTING"
	ArtifactTypePoster   = "POSTER"
)

// Mission is static reference data, seeded at boot and rarely mutated.
type Mission struct {
	ID                       uint   `gorm:"primaryKey" json:"id"`
	Slug                     string `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Title                    string `gorm:"not null" json:"title"`
	Description              string `gorm:"type:text" json:"description"`
	Category                 string `gorm:"size:50;index" json:"category"`
	Difficulty               int    `gorm:"default:1" json:"difficulty"` // 1-4 stars
	IconURL                  string `json:"icon_url"`
	MaxAchievementCount      *int   `json:"max_achievement_count"`       // nil = unlimited
	MaxDailyAchievementCount *int   `json:"max_daily_achievement_count"` // nil = unlimited
	RequiredArtifactType     string `gorm:"not null;default:'NONE';size:20" json:"required_artifact_type"`
	IsFeatured               bool   `gorm:"default:false" json:"is_featured"`
	IsHidden                 bool   `gorm:"default:false;index" json:"is_hidden"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Achievement links a user to a mission they reported completing.
type Achievement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MissionID uint      `gorm:"not null;index" json:"mission_id"`
	SeasonID  uint      `gorm:"not null;index" json:"season_id"`
	CreatedAt time.Time `json:"created_at"`

	User      *User             `gorm:"foreignKey:UserID" json:"-"`
	Mission   *Mission          `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	Artifacts []MissionArtifact `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE" json:"artifacts,omitempty"`
}

// MissionArtifact is the proof attached to an achievement (photo, text, geolocation).
type MissionArtifact struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	AchievementID uint     `gorm:"not null;index" json:"achievement_id"`
	UserID        uint     `gorm:"not null;index" json:"user_id"`
	ArtifactType  string   `gorm:"not null;size:20;index" json:"artifact_type"`
	TextContent   *string  `gorm:"type:text" json:"text_content,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Description   string   `json:"description"`
	Lat           *float64 `json:"lat,omitempty"`
	Long          *float64 `json:"long,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// PostingEvent records a leafleting run reported through a POSTING mission.
type PostingEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AchievementID uint      `gorm:"not null;index" json:"achievement_id"`
	Count         int       `gorm:"not null" json:"count"` // flyers posted
	Lat           *float64  `json:"lat,omitempty"`
	Long          *float64  `json:"long,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Mission) TableName() string {
	return "missions"
}

func (Achievement) TableName() string {
	return "achievements"
}

func (MissionArtifact) TableName() string {
	return "mission_artifacts"
}

func (PostingEvent) TableName() string {
	return "posting_events"
}
