// handlers/badges.go - badge listing and notification state
package handlers

import (
	"strconv"

	"actionboard/database"
	"actionboard/middleware"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

type badgeView struct {
	models.UserBadge
	Label string `json:"label"`
	Tier  string `json:"tier"`
	Emoji string `json:"emoji"`
}

// GetMyBadges lists the caller's badges for the current season with
// display metadata attached.
func GetMyBadges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	season, err := services.GetCurrentSeason(db)
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "No active season"})
	}

	var badges []models.UserBadge
	err = db.Where("user_id = ? AND season_id = ?", userID, season.ID).
		Order("achieved_at DESC").
		Find(&badges).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load badges"})
	}

	views := make([]badgeView, 0, len(badges))
	for _, badge := range badges {
		label, err := badge.BadgeType.Label()
		if err != nil {
			// Unknown category in storage means a migration bug; skip
			// the row rather than render garbage.
			continue
		}
		views = append(views, badgeView{
			UserBadge: badge,
			Label:     label,
			Tier:      models.BadgeTier(badge.Rank),
			Emoji:     models.BadgeEmoji(badge.Rank),
		})
	}

	return c.JSON(fiber.Map{"success": true, "badges": views})
}

// GetUnnotifiedBadges returns badges not yet shown to the caller.
func GetUnnotifiedBadges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var badges []models.UserBadge
	err = db.Where("user_id = ? AND is_notified = ?", userID, false).
		Order("achieved_at DESC").
		Find(&badges).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load badges"})
	}

	return c.JSON(fiber.Map{"success": true, "badges": badges})
}

// MarkBadgeNotified flags one of the caller's badges as shown.
func MarkBadgeNotified(c *fiber.Ctx) error {
	badgeID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid badge ID"})
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	result := db.Model(&models.UserBadge{}).
		Where("id = ? AND user_id = ?", uint(badgeID), userID).
		Update("is_notified", true)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update badge"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Badge not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
