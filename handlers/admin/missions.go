// handlers/admin/missions.go - mission catalog administration
package admin

import (
	"strconv"

	"actionboard/database"
	"actionboard/models"

	"github.com/gofiber/fiber/v2"
)

type MissionRequest struct {
	Slug                     string `json:"slug"`
	Title                    string `json:"title"`
	Description              string `json:"description"`
	Category                 string `json:"category"`
	Difficulty               int    `json:"difficulty"`
	IconURL                  string `json:"icon_url"`
	MaxAchievementCount      *int   `json:"max_achievement_count"`
	MaxDailyAchievementCount *int   `json:"max_daily_achievement_count"`
	RequiredArtifactType     string `json:"required_artifact_type"`
	IsFeatured               bool   `json:"is_featured"`
	IsHidden                 bool   `json:"is_hidden"`
}

func validArtifactType(t string) bool {
	switch t {
	case models.ArtifactTypeNone, models.ArtifactTypeText, models.ArtifactTypeEmail,
		models.ArtifactTypeLink, models.ArtifactTypeImage, models.ArtifactTypeImageGeo,
		models.ArtifactTypeReferral, models.ArtifactTypePosting, models.ArtifactTypePoster:
		return true
	}
	return false
}

func (r *MissionRequest) validate() string {
	if r.Slug == "" || r.Title == "" {
		return "Slug and title required"
	}
	if r.Difficulty < 1 || r.Difficulty > 4 {
		return "Difficulty must be between 1 and 4"
	}
	if r.RequiredArtifactType == "" {
		r.RequiredArtifactType = models.ArtifactTypeNone
	}
	if !validArtifactType(r.RequiredArtifactType) {
		return "Unknown artifact type"
	}
	return ""
}

// CreateMission adds a mission to the catalog.
func CreateMission(c *fiber.Ctx) error {
	var req MissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": msg})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var existing models.Mission
	if err := db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Mission slug already exists"})
	}

	mission := models.Mission{
		Slug:                     req.Slug,
		Title:                    req.Title,
		Description:              req.Description,
		Category:                 req.Category,
		Difficulty:               req.Difficulty,
		IconURL:                  req.IconURL,
		MaxAchievementCount:      req.MaxAchievementCount,
		MaxDailyAchievementCount: req.MaxDailyAchievementCount,
		RequiredArtifactType:     req.RequiredArtifactType,
		IsFeatured:               req.IsFeatured,
		IsHidden:                 req.IsHidden,
	}
	if err := db.Create(&mission).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create mission"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "mission": mission})
}

// UpdateMission rewrites a mission's fields. The slug stays fixed; it
// appears in shared links.
func UpdateMission(c *fiber.Ctx) error {
	missionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid mission ID"})
	}

	var req MissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var mission models.Mission
	if err := db.First(&mission, uint(missionID)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Mission not found"})
	}

	req.Slug = mission.Slug
	if msg := req.validate(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": msg})
	}

	updates := map[string]interface{}{
		"title":                       req.Title,
		"description":                 req.Description,
		"category":                    req.Category,
		"difficulty":                  req.Difficulty,
		"icon_url":                    req.IconURL,
		"max_achievement_count":       req.MaxAchievementCount,
		"max_daily_achievement_count": req.MaxDailyAchievementCount,
		"required_artifact_type":      req.RequiredArtifactType,
		"is_featured":                 req.IsFeatured,
		"is_hidden":                   req.IsHidden,
	}
	if err := db.Model(&mission).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update mission"})
	}

	return c.JSON(fiber.Map{"success": true, "mission": mission})
}

// HideMission hides a mission from the catalog. Achievements and XP
// already earned stay untouched, so missions are never hard-deleted.
func HideMission(c *fiber.Ctx) error {
	missionID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid mission ID"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	result := db.Model(&models.Mission{}).Where("id = ?", uint(missionID)).Update("is_hidden", true)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to hide mission"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Mission not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
