// handlers/posterboards.go - poster board map endpoints
package handlers

import (
	"errors"
	"strconv"
	"time"

	"actionboard/database"
	"actionboard/middleware"
	"actionboard/models"
	"actionboard/services"

	"github.com/gofiber/fiber/v2"
)

type UpdateBoardStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

// GetPosterBoards lists boards, filterable by prefecture, city and
// status. Responses are paged; the map tiles request one area at a time.
func GetPosterBoards(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	query := db.Model(&models.PosterBoard{})

	if prefecture := c.Query("prefecture"); prefecture != "" {
		if decoded, err := decodePathParam(prefecture); err == nil {
			prefecture = decoded
		}
		if !models.IsValidPrefecture(prefecture) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid prefecture"})
		}
		query = query.Where("prefecture = ?", prefecture)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseBoardStatus(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status"})
		}
		query = query.Where("status = ?", status)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "500"))
	if limit <= 0 || limit > 2000 {
		limit = 500
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	var total int64
	query.Count(&total)

	var boards []models.PosterBoard
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&boards).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load boards"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"total":   total,
		"boards":  boards,
	})
}

// GetPosterBoard returns one board.
func GetPosterBoard(c *fiber.Ctx) error {
	boardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid board ID"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	var board models.PosterBoard
	if err := db.First(&board, uint(boardID)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Board not found"})
	}

	return c.JSON(fiber.Map{"success": true, "board": board})
}

// UpdatePosterBoardStatus moves a board to a new status and broadcasts
// the change to feed subscribers.
func UpdatePosterBoardStatus(c *fiber.Ctx) error {
	boardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid board ID"})
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	var req UpdateBoardStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	status, err := models.ParseBoardStatus(req.Status)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	board, previous, err := services.UpdateBoardStatus(db, uint(boardID), userID, status, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBoardNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Board not found"})
		case errors.Is(err, services.ErrInvalidBoardState):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update board"})
	}

	BroadcastBoardStatus(BoardStatusEvent{
		BoardID:        board.ID,
		Prefecture:     board.Prefecture,
		PreviousStatus: previous,
		NewStatus:      board.Status,
		UpdatedAt:      time.Now().UTC(),
	})

	return c.JSON(fiber.Map{"success": true, "board": board})
}

// GetPosterBoardHistory returns the audit trail for one board.
func GetPosterBoardHistory(c *fiber.Ctx) error {
	boardID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid board ID"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	history, err := services.GetBoardHistory(db, uint(boardID), limit)
	if err != nil {
		if errors.Is(err, services.ErrBoardNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Board not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load history"})
	}

	return c.JSON(fiber.Map{"success": true, "history": history})
}

// GetPosterBoardStats returns per-status counts, optionally scoped to a
// prefecture.
func GetPosterBoardStats(c *fiber.Ctx) error {
	prefecture := c.Query("prefecture")
	if prefecture != "" {
		if decoded, err := decodePathParam(prefecture); err == nil {
			prefecture = decoded
		}
		if !models.IsValidPrefecture(prefecture) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid prefecture"})
		}
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	total, counts, err := services.GetBoardStats(db, prefecture)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load stats"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"total":   total,
		"counts":  counts,
	})
}
