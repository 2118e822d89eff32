// handlers/seasons.go
package handlers

import (
	"actionboard/database"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

// GetSeasons lists all seasons, newest first.
func GetSeasons(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var seasons []models.Season
	if err := db.Order("start_date DESC").Find(&seasons).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load seasons"})
	}

	return c.JSON(fiber.Map{"success": true, "seasons": seasons})
}

// GetCurrentSeason returns the active season.
func GetCurrentSeason(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	season, err := services.GetCurrentSeason(db)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active season"})
	}

	return c.JSON(fiber.Map{"success": true, "season": season})
}
