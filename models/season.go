// models/season.go
package models

import "time"

// Season is a bounded period XP and rankings are scoped to. At most one
// season is active; the activation flow enforces that, not the schema.
type Season struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Slug      string     `gorm:"uniqueIndex;not null;size:50" json:"slug"`
	Name      string     `gorm:"not null" json:"name"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date"` // nil = ongoing
	IsActive  bool       `gorm:"default:false;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Season) TableName() string {
	return "seasons"
}
