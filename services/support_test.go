package services

// Service tests run against a fresh in-memory SQLite database per test
// so each one is isolated.

import (
	"testing"
	"time"

	"actionboard/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Same NowFunc as the production connection so timestamp window
	// comparisons see one timezone.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
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
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedSeason(t *testing.T, db *gorm.DB) models.Season {
	t.Helper()
	season := models.Season{Slug: "test-season", Name: "テスト", IsActive: true}
	require.NoError(t, db.Create(&season).Error)
	return season
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
