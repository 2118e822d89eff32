// handlers/stats.go - public campaign progress numbers
package handlers

import (
	"os"
	"strconv"

	"actionboard/database"
	"actionboard/models"
	"actionboard/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCampaignStats returns the headline numbers shown on the landing
// page: supporters, actions taken, flyers posted, boards covered and
// the donation total.
func GetCampaignStats(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var supporters int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&supporters)

	var achievements int64
	db.Model(&models.Achievement{}).Count(&achievements)

	var flyers int64
	db.Model(&models.PostingEvent{}).Select("COALESCE(SUM(count), 0)").Scan(&flyers)

	var boardsDone int64
	db.Model(&models.PosterBoard{}).
		Where("status IN ?", []models.BoardStatus{models.BoardStatusDone, models.BoardStatusConfirmedPosted}).
		Count(&boardsDone)

	response := fiber.Map{
		"success":        true,
		"supporters":     supporters,
		"achievements":   achievements,
		"flyers_posted":  flyers,
		"boards_covered": boardsDone,
	}

	// Donation totals come from the accounting side, not this service;
	// operators publish the latest figure in units of 10,000 yen.
	if raw := os.Getenv("DONATION_TOTAL_MAN"); raw != "" {
		if man, err := strconv.Atoi(raw); err == nil && man >= 0 {
			response["donation_total"] = utils.FormatAmount(man)
		}
	}

	return c.JSON(response)
}
