// services/season.go
package services

import (
	"errors"

	"actionboard/models"

	"gorm.io/gorm"
)

var ErrNoActiveSeason = errors.New("no active season")

// GetCurrentSeason returns the single active season.
func GetCurrentSeason(db *gorm.DB) (*models.Season, error) {
	var season models.Season
	if err := db.Where("is_active = ?", true).First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}
	return &season, nil
}

// ActivateSeason makes the given season the active one. Deactivation and
// activation run in one transaction so exactly one season stays active.
func ActivateSeason(db *gorm.DB, seasonID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var season models.Season
		if err := tx.First(&season, seasonID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Season{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&season).Update("is_active", true).Error
	})
}
