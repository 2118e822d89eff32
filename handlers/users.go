// handlers/users.go - profile endpoints
package handlers

import (
	"strconv"
	"strings"

	"actionboard/database"
	"actionboard/middleware"
	"actionboard/models"
	"actionboard/services"
	"actionboard/utils"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty"`
	AddressPrefecture *string `json:"address_prefecture,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
}

// GetMe returns the caller's profile with season progress and rank.
func GetMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	response := fiber.Map{"success": true, "user": user}

	if season, err := services.GetCurrentSeason(db); err == nil {
		if level, err := services.GetUserLevel(db, userID, season.ID); err == nil {
			response["level"] = services.BuildLevelProgress(level)
		}
		if rank, err := services.GetUserRank(db, season.ID, userID); err == nil && rank > 0 {
			response["rank"] = rank
		}
	}

	return c.JSON(response)
}

// UpdateMe updates the caller's mutable profile fields. Date of birth
// and email are fixed at signup.
func UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name cannot be empty"})
		}
		updates["name"] = name
	}
	if req.AddressPrefecture != nil {
		if !models.IsValidPrefecture(*req.AddressPrefecture) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid prefecture"})
		}
		updates["address_prefecture"] = *req.AddressPrefecture
	}
	if req.AvatarURL != nil {
		if *req.AvatarURL != "" && !utils.IsValidURL(*req.AvatarURL) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid avatar URL"})
		}
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// DeleteMe soft-deletes the account. Achievements and the XP ledger
// stay; rankings stop including the user.
func DeleteMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	result := db.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", userID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete account"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetPublicProfile returns the masked public view of another user.
func GetPublicProfile(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user ID"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", uint(userID), false).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	profile := fiber.Map{
		"id":                 user.ID,
		"name":               utils.MaskUsername(user.Name),
		"address_prefecture": user.AddressPrefecture,
		"avatar_url":         user.AvatarURL,
	}

	if season, err := services.GetCurrentSeason(db); err == nil {
		if level, err := services.GetUserLevel(db, user.ID, season.ID); err == nil {
			profile["level"] = level.Level
		}
	}

	return c.JSON(fiber.Map{"success": true, "user": profile})
}
