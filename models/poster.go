// models/poster.go
package models

import (
	"fmt"
	"time"
)

// BoardStatus is the lifecycle state of a poster board. Stored as text;
// Code gives the stable numeric form used in CSV exports.
type BoardStatus string

const (
	BoardStatusNotYet            BoardStatus = "not_yet"
	BoardStatusDone              BoardStatus = "done"
	BoardStatusError             BoardStatus = "error"
	BoardStatusReserved          BoardStatus = "reserved"
	BoardStatusNeedsConfirmation BoardStatus = "needs_confirmation"
	BoardStatusErrorInProgress   BoardStatus = "error_in_progress"
	BoardStatusDeleted           BoardStatus = "deleted"
	BoardStatusConfirmedPosted   BoardStatus = "confirmed_posted"
)

// AllBoardStatuses lists every status in code order.
var AllBoardStatuses = []BoardStatus{
	BoardStatusNotYet,
	BoardStatusDone,
	BoardStatusError,
	BoardStatusReserved,
	BoardStatusNeedsConfirmation,
	BoardStatusErrorInProgress,
	BoardStatusDeleted,
	BoardStatusConfirmedPosted,
}

// ParseBoardStatus validates a raw status string.
func ParseBoardStatus(s string) (BoardStatus, error) {
	for _, status := range AllBoardStatuses {
		if BoardStatus(s) == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown board status: %q", s)
}

// Code returns the numeric code for a status, or -1 for an unknown value.
func (s BoardStatus) Code() int {
	for i, status := range AllBoardStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

func (s BoardStatus) Valid() bool {
	return s.Code() >= 0
}

// PosterBoard is a physical bulletin location tracked on the map.
type PosterBoard struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Prefecture string      `gorm:"not null;size:20;index" json:"prefecture"`
	City       string      `gorm:"size:100;index" json:"city"`
	Number     string      `gorm:"size:50" json:"number"` // board number within the city
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	Lat        *float64    `json:"lat"`
	Long       *float64    `json:"long"`
	Status     BoardStatus `gorm:"not null;default:'not_yet';size:30;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	History []PosterBoardStatusHistory `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

// PosterBoardStatusHistory is the append-only audit trail. Rows are never
// mutated or deleted; every status change on a board appends exactly one.
type PosterBoardStatusHistory struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	BoardID        uint        `gorm:"not null;index" json:"board_id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	PreviousStatus BoardStatus `gorm:"not null;size:30" json:"previous_status"`
	NewStatus      BoardStatus `gorm:"not null;size:30" json:"new_status"`
	Note           *string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PosterBoard) TableName() string {
	return "poster_boards"
}

func (PosterBoardStatusHistory) TableName() string {
	return "poster_board_status_history"
}
