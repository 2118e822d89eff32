// handlers/admin/badges.go
package admin

import (
	"errors"

	"actionboard/database"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

// RecalculateBadges runs the full badge batch for the active season.
// The same job the nightly CLI runs, exposed for manual triggering.
func RecalculateBadges(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	summary, err := services.RunBadgeCalculation(db)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveSeason) {
			return c.Status(503).JSON(fiber.Map{"success": false, "error": "No active season"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Badge calculation failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
		"total":   summary.Total(),
	})
}
