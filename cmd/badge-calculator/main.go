// cmd/badge-calculator - nightly batch that recomputes rank badges.
//
// Usage:
//
//	badge-calculator              # active season
//	badge-calculator -season 3    # specific season
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"actionboard/database"
	"actionboard/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	seasonID := flag.Uint("season", 0, "season ID to calculate (default: active season)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	start := time.Now()

	var summary *services.BadgeCalcSummary
	if *seasonID != 0 {
		summary, err = services.CalculateAllBadges(db, *seasonID)
	} else {
		summary, err = services.RunBadgeCalculation(db)
	}
	if err != nil {
		logger.Error("badge calculation failed",
			zap.Uint("season_id", *seasonID),
			zap.Error(err),
		)
		os.Exit(1)
	}

	logger.Info("badge calculation complete",
		zap.Uint("season_id", summary.SeasonID),
		zap.Int("all", summary.All),
		zap.Int("daily", summary.Daily),
		zap.Int("prefecture", summary.Prefecture),
		zap.Int("mission", summary.Mission),
		zap.Int("total", summary.Total()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
