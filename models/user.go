// models/user.go
package models

import (
	"time"
)

type User struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	Email             string  `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password          string  `gorm:"not null" json:"-"`
	AddressPrefecture string  `json:"address_prefecture"`
	AvatarURL         string  `json:"avatar_url"`
	DateOfBirth       string  `gorm:"size:10" json:"-"` // YYYY-MM-DD, fixed at signup
	ReferralCode      *string `gorm:"uniqueIndex" json:"referral_code,omitempty"`
	LineUserID        *string `gorm:"uniqueIndex" json:"-"`
	IsAdmin           bool    `gorm:"default:false" json:"is_admin"`
	IsDeleted         bool    `gorm:"default:false;index" json:"-"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Achievements []Achievement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
	Levels       []UserLevel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"levels,omitempty"`
	Badges       []UserBadge   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"badges,omitempty"`
}

func (User) TableName() string {
	return "users"
}
