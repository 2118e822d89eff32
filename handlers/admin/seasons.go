// handlers/admin/seasons.go - season administration
package admin

import (
	"strconv"
	"time"

	"actionboard/database"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

type CreateSeasonRequest struct {
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Activate  bool       `json:"activate"`
}

// CreateSeason registers a new season, optionally activating it
// immediately.
func CreateSeason(c *fiber.Ctx) error {
	var req CreateSeasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Slug == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Slug and name required"})
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now().UTC()
	}
	if req.EndDate != nil && !req.EndDate.After(req.StartDate) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "End date must be after start date"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var existing models.Season
	if err := db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Season slug already exists"})
	}

	season := models.Season{
		Slug:      req.Slug,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := db.Create(&season).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create season"})
	}

	if req.Activate {
		if err := services.ActivateSeason(db, season.ID); err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Season created but activation failed"})
		}
		season.IsActive = true
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "season": season})
}

// ActivateSeason switches the active season.
func ActivateSeason(c *fiber.Ctx) error {
	seasonID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid season ID"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	if err := services.ActivateSeason(db, uint(seasonID)); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to activate season"})
	}

	return c.JSON(fiber.Map{"success": true})
}
