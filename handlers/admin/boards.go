// handlers/admin/boards.go - poster board bulk import
package admin

import (
	"fmt"

	"actionboard/database"
	"actionboard/models"
	"actionboard/utils"

	"github.com/gofiber/fiber/v2"
)

type BoardImportRow struct {
	Prefecture string   `json:"prefecture"`
	City       string   `json:"city"`
	Number     string   `json:"number"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Lat        *float64 `json:"lat"`
	Long       *float64 `json:"long"`
}

type ImportBoardsRequest struct {
	Boards []BoardImportRow `json:"boards"`
}

const importBatchSize = 500

// ImportBoards bulk-creates poster boards from election commission data.
// All boards start at not_yet.
func ImportBoards(c *fiber.Ctx) error {
	var req ImportBoardsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if len(req.Boards) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No boards to import"})
	}

	for i, row := range req.Boards {
		if !models.IsValidPrefecture(row.Prefecture) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   fmt.Sprintf("Row %d: invalid prefecture %q", i, row.Prefecture),
			})
		}
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Database not available"})
	}

	boards := make([]models.PosterBoard, 0, len(req.Boards))
	for _, row := range req.Boards {
		boards = append(boards, models.PosterBoard{
			Prefecture: row.Prefecture,
			City:       row.City,
			Number:     row.Number,
			Name:       row.Name,
			Address:    row.Address,
			Lat:        row.Lat,
			Long:       row.Long,
			Status:     models.BoardStatusNotYet,
		})
	}

	created := 0
	for _, batch := range utils.Chunk(boards, importBatchSize) {
		if err := db.Create(&batch).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Import failed",
				"created": created,
			})
		}
		created += len(batch)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "created": created})
}
