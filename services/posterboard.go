// services/posterboard.go - poster board status machine
package services

import (
	"errors"
	"fmt"

	"actionboard/models"

	"gorm.io/gorm"
)

var (
	ErrBoardNotFound     = errors.New("poster board not found")
	ErrInvalidBoardState = errors.New("invalid board status")
)

// UpdateBoardStatus moves a board to a new status and appends the audit
// row. Both writes run in one transaction; a failure on either side
// leaves the board and its history untouched. The returned status is
// the one the transaction actually replaced.
func UpdateBoardStatus(db *gorm.DB, boardID, userID uint, newStatus models.BoardStatus, note *string) (*models.PosterBoard, models.BoardStatus, error) {
	if !newStatus.Valid() {
		return nil, "", ErrInvalidBoardState
	}

	var board models.PosterBoard
	var previous models.BoardStatus
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&board, boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return fmt.Errorf("failed to load board: %w", err)
		}

		previous = board.Status

		if err := tx.Model(&board).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update board status: %w", err)
		}
		board.Status = newStatus

		history := models.PosterBoardStatusHistory{
			BoardID:        board.ID,
			UserID:         userID,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			Note:           note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to append board history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &board, previous, nil
}

// GetBoardHistory returns the audit trail newest-first.
func GetBoardHistory(db *gorm.DB, boardID uint, limit int) ([]models.PosterBoardStatusHistory, error) {
	var exists int64
	if err := db.Model(&models.PosterBoard{}).Where("id = ?", boardID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrBoardNotFound
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var history []models.PosterBoardStatusHistory
	err := db.Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// BoardStatusCount is one row of the per-prefecture progress summary.
type BoardStatusCount struct {
	Status models.BoardStatus `json:"status"`
	Count  int64              `json:"count"`
}

// GetBoardStats counts boards per status, optionally within a prefecture.
// Statuses with zero boards are included so the client can render a
// complete breakdown.
func GetBoardStats(db *gorm.DB, prefecture string) (int64, []BoardStatusCount, error) {
	query := db.Model(&models.PosterBoard{})
	if prefecture != "" {
		query = query.Where("prefecture = ?", prefecture)
	}

	var rows []BoardStatusCount
	if err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return 0, nil, err
	}

	byStatus := make(map[models.BoardStatus]int64, len(rows))
	var total int64
	for _, row := range rows {
		byStatus[row.Status] = row.Count
		total += row.Count
	}

	counts := make([]BoardStatusCount, 0, len(models.AllBoardStatuses))
	for _, status := range models.AllBoardStatuses {
		counts = append(counts, BoardStatusCount{Status: status, Count: byStatus[status]})
	}
	return total, counts, nil
}
