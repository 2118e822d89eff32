// handlers/missions.go - mission catalog, achieve and cancel
package handlers

import (
	"errors"
	"strconv"

	"actionboard/database"
	"actionboard/middleware"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

type AchieveMissionRequest struct {
	TextContent  *string  `json:"text_content,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Description  string   `json:"description,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Long         *float64 `json:"long,omitempty"`
	PostingCount *int     `json:"posting_count,omitempty"`
}

// GetMissions lists the visible mission catalog, featured first.
func GetMissions(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	query := db.Where("is_hidden = ?", false)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var missions []models.Mission
	if err := query.Order("is_featured DESC, id ASC").Find(&missions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load missions"})
	}

	return c.JSON(fiber.Map{"success": true, "missions": missions})
}

// GetMission returns one mission with the caller's achievement count.
func GetMission(c *fiber.Ctx) error {
	missionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid mission ID"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var mission models.Mission
	if err := db.First(&mission, uint(missionID)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Mission not found"})
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var achievedCount int64
	db.Model(&models.Achievement{}).
		Where("user_id = ? AND mission_id = ?", userID, mission.ID).
		Count(&achievedCount)

	return c.JSON(fiber.Map{
		"success":        true,
		"mission":        mission,
		"achieved_count": achievedCount,
	})
}

// AchieveMission records a completion for the caller in the current
// season.
func AchieveMission(c *fiber.Ctx) error {
	missionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid mission ID"})
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var req AchieveMissionRequest
	_ = c.BodyParser(&req)

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	season, err := services.GetCurrentSeason(db)
	if err != nil {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "No active season"})
	}

	var artifact *services.ArtifactInput
	if req.TextContent != nil || req.ImageURL != nil || req.Lat != nil {
		artifact = &services.ArtifactInput{
			TextContent: req.TextContent,
			ImageURL:    req.ImageURL,
			Description: req.Description,
			Lat:         req.Lat,
			Long:        req.Long,
		}
	}

	var posting *services.PostingInput
	if req.PostingCount != nil {
		if *req.PostingCount <= 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "posting_count must be positive"})
		}
		posting = &services.PostingInput{
			Count: *req.PostingCount,
			Lat:   req.Lat,
			Long:  req.Long,
		}
	}

	achievement, level, err := services.AchieveMission(db, userID, uint(missionID), season.ID, artifact, posting)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissionNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Mission not found"})
		case errors.Is(err, services.ErrAchievementLimit):
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "このミッションは達成回数の上限に達しています"})
		case errors.Is(err, services.ErrDailyAchievementLimit):
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "このミッションは本日の達成回数の上限に達しています"})
		case errors.Is(err, services.ErrArtifactRequired):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "This mission requires proof of completion"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to record achievement"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":     true,
		"achievement": achievement,
		"level":       services.BuildLevelProgress(level),
	})
}

// CancelAchievement removes the caller's own achievement and reverses
// the XP it granted.
func CancelAchievement(c *fiber.Ctx) error {
	achievementID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid achievement ID"})
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	level, err := services.CancelAchievement(db, userID, uint(achievementID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAchievementNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Achievement not found"})
		case errors.Is(err, services.ErrNotAchievementOwner):
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "You can only cancel your own achievements"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to cancel achievement"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"level":   services.BuildLevelProgress(level),
	})
}

// GetMyAchievements lists the caller's achievements, newest first.
func GetMyAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var achievements []models.Achievement
	err = db.Where("user_id = ?", userID).
		Preload("Mission").
		Order("created_at DESC").
		Limit(100).
		Find(&achievements).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load achievements"})
	}

	return c.JSON(fiber.Map{"success": true, "achievements": achievements})
}
