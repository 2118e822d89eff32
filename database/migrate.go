// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"actionboard/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Season{},
		&models.Mission{},
		&models.Achievement{},
		&models.MissionArtifact{},
		&models.PostingEvent{},
		&models.UserLevel{},
		&models.XpTransaction{},
		&models.UserBadge{},
		&models.PosterBoard{},
		&models.PosterBoardStatusHistory{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed")

	createIndexes()
	createRankingView()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the AutoMigrate tags don't cover
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// Ranking queries scan xp_transactions by season + time window
	db.Exec("CREATE INDEX IF NOT EXISTS idx_xp_tx_season_created ON xp_transactions(season_id, created_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_xp_tx_user_season ON xp_transactions(user_id, season_id)")

	// User level rankings order by xp within a season
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_levels_season_xp ON user_levels(season_id, xp DESC)")

	// Achievement limit checks look up by user + mission
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_user_mission ON achievements(user_id, mission_id)")

	// Referral duplicate checks filter artifacts by type + text
	db.Exec("CREATE INDEX IF NOT EXISTS idx_artifacts_type_text ON mission_artifacts(artifact_type, text_content)")

	// Board history is read newest-first per board
	db.Exec("CREATE INDEX IF NOT EXISTS idx_board_history_board_created ON poster_board_status_history(board_id, created_at DESC)")

	log.Println("✅ Indexes created successfully")
}

// createRankingView materializes the per-season ranking used by handlers
// and the badge batch as a plain view over user_levels.
func createRankingView() {
	db := GetDB()

	db.Exec(`
		CREATE OR REPLACE VIEW user_ranking_view AS
		SELECT
			ul.user_id,
			ul.season_id,
			u.name,
			u.address_prefecture,
			ul.xp,
			ul.level,
			ul.updated_at,
			ROW_NUMBER() OVER (
				PARTITION BY ul.season_id
				ORDER BY ul.xp DESC, ul.updated_at ASC, ul.user_id ASC
			) AS rank
		FROM user_levels ul
		JOIN users u ON u.id = ul.user_id
		WHERE u.is_deleted = false
	`)

	log.Println("✅ Ranking view created")
}
