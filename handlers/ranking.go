// handlers/ranking.go - leaderboard endpoints
package handlers

import (
	"net/url"
	"strconv"

	"actionboard/database"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

// decodePathParam unescapes percent-encoded path segments; prefecture
// names arrive URL-encoded.
func decodePathParam(s string) (string, error) {
	return url.PathUnescape(s)
}

func parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "100"))
	if err != nil {
		return 100
	}
	return limit
}

// resolveSeason picks the season from ?season_id or falls back to the
// active one.
func resolveSeason(c *fiber.Ctx) (uint, error) {
	if raw := c.Query("season_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, fiber.NewError(400, "Invalid season ID")
		}
		return uint(id), nil
	}

	db := database.GetDB()
	season, err := services.GetCurrentSeason(db)
	if err != nil {
		return 0, fiber.NewError(503, "No active season")
	}
	return season.ID, nil
}

// GetOverallRanking returns the season leaderboard.
func GetOverallRanking(c *fiber.Ctx) error {
	seasonID, err := resolveSeason(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}

	entries, err := services.GetOverallRanking(database.GetDB(), seasonID, parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load ranking"})
	}

	return c.JSON(fiber.Map{"success": true, "season_id": seasonID, "ranking": entries})
}

// GetDailyRanking returns today's XP leaderboard (JST day).
func GetDailyRanking(c *fiber.Ctx) error {
	seasonID, err := resolveSeason(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}

	entries, err := services.GetDailyRanking(database.GetDB(), seasonID, parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load ranking"})
	}

	return c.JSON(fiber.Map{"success": true, "season_id": seasonID, "ranking": entries})
}

// GetPrefectureRanking returns the leaderboard for one prefecture.
func GetPrefectureRanking(c *fiber.Ctx) error {
	prefecture := c.Params("prefecture")
	if decoded, err := decodePathParam(prefecture); err == nil {
		prefecture = decoded
	}
	if !models.IsValidPrefecture(prefecture) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid prefecture"})
	}

	seasonID, err := resolveSeason(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}

	entries, err := services.GetPrefectureRanking(database.GetDB(), seasonID, prefecture, parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load ranking"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"season_id":  seasonID,
		"prefecture": prefecture,
		"ranking":    entries,
	})
}

// GetMissionRanking ranks users by achievement count for one mission.
func GetMissionRanking(c *fiber.Ctx) error {
	missionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid mission ID"})
	}

	seasonID, err := resolveSeason(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}

	entries, err := services.GetMissionRanking(database.GetDB(), seasonID, uint(missionID), parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load ranking"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"season_id":  seasonID,
		"mission_id": missionID,
		"ranking":    entries,
	})
}
