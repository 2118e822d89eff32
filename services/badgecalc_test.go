package services

import (
	"testing"

	"actionboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideBadgeAction_NewHolder(t *testing.T) {
	assert.Equal(t, badgeActionCreate, decideBadgeAction(nil, 1))
	assert.Equal(t, badgeActionCreate, decideBadgeAction(nil, 100))
}

func TestDecideBadgeAction_OutsideCutoff(t *testing.T) {
	assert.Equal(t, badgeActionNone, decideBadgeAction(nil, 101))
	assert.Equal(t, badgeActionNone, decideBadgeAction(nil, 0))
	assert.Equal(t, badgeActionNone, decideBadgeAction(nil, -3))

	existing := &models.UserBadge{Rank: 200}
	assert.Equal(t, badgeActionNone, decideBadgeAction(existing, 101))
}

func TestDecideBadgeAction_ImproveOnly(t *testing.T) {
	existing := &models.UserBadge{Rank: 30}

	// Strictly better rank updates
	assert.Equal(t, badgeActionImprove, decideBadgeAction(existing, 29))
	assert.Equal(t, badgeActionImprove, decideBadgeAction(existing, 1))

	// Equal or worse leaves the badge untouched
	assert.Equal(t, badgeActionNone, decideBadgeAction(existing, 30))
	assert.Equal(t, badgeActionNone, decideBadgeAction(existing, 31))
	assert.Equal(t, badgeActionNone, decideBadgeAction(existing, 100))
}

func TestDecideBadgeAction_Idempotent(t *testing.T) {
	// Re-running the batch with the same rank must be a no-op
	for rank := 1; rank <= 100; rank++ {
		existing := &models.UserBadge{Rank: rank}
		assert.Equal(t, badgeActionNone, decideBadgeAction(existing, rank), "rank=%d", rank)
	}
}

func TestBadgeCalcSummaryTotal(t *testing.T) {
	summary := BadgeCalcSummary{All: 3, Daily: 2, Prefecture: 7, Mission: 5}
	assert.Equal(t, 17, summary.Total())
}

func TestCalculateDailyBadgesOneRowPerUser(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)
	user := seedUser(t, db, "taro", "taro@example.com")

	tx := models.XpTransaction{
		UserID:     user.ID,
		SeasonID:   season.ID,
		XpAmount:   100,
		SourceType: models.XpSourceMissionAchievement,
	}
	require.NoError(t, db.Create(&tx).Error)

	updated, err := calculateDailyBadges(db, season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var badges []models.UserBadge
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&badges).Error)
	require.Len(t, badges, 1)
	assert.Equal(t, models.BadgeTypeDaily, badges[0].BadgeType)
	assert.Nil(t, badges[0].SubType)
	assert.Equal(t, 1, badges[0].Rank)
	assert.False(t, badges[0].IsNotified)
}

func TestCalculateDailyBadgesRerunIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)
	user := seedUser(t, db, "taro", "taro@example.com")

	tx := models.XpTransaction{
		UserID:     user.ID,
		SeasonID:   season.ID,
		XpAmount:   100,
		SourceType: models.XpSourceMissionAchievement,
	}
	require.NoError(t, db.Create(&tx).Error)

	_, err := calculateDailyBadges(db, season.ID)
	require.NoError(t, err)

	// Mark the badge as seen, then rerun with an unchanged ranking: the
	// badge must stay one row and stay notified.
	require.NoError(t, db.Model(&models.UserBadge{}).
		Where("user_id = ?", user.ID).
		Update("is_notified", true).Error)

	updated, err := calculateDailyBadges(db, season.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)

	var badges []models.UserBadge
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&badges).Error)
	require.Len(t, badges, 1)
	assert.True(t, badges[0].IsNotified)
}

func TestCalculateMissionBadgesSkipsCappedMissions(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)
	user := seedUser(t, db, "taro", "taro@example.com")

	one := 1
	capped := models.Mission{
		Slug:                 "first-profile",
		Title:                "プロフィールを設定しよう",
		Difficulty:           1,
		MaxAchievementCount:  &one,
		RequiredArtifactType: models.ArtifactTypeNone,
	}
	repeatable := models.Mission{
		Slug:                 "sns-share",
		Title:                "公式投稿をSNSでシェアしよう",
		Difficulty:           1,
		RequiredArtifactType: models.ArtifactTypeLink,
	}
	require.NoError(t, db.Create(&capped).Error)
	require.NoError(t, db.Create(&repeatable).Error)

	for _, missionID := range []uint{capped.ID, repeatable.ID} {
		achievement := models.Achievement{UserID: user.ID, MissionID: missionID, SeasonID: season.ID}
		require.NoError(t, db.Create(&achievement).Error)
	}

	updated, err := calculateMissionBadges(db, season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var badges []models.UserBadge
	require.NoError(t, db.Where("badge_type = ?", models.BadgeTypeMission).Find(&badges).Error)
	require.Len(t, badges, 1)
	require.NotNil(t, badges[0].SubType)
	assert.Equal(t, repeatable.Slug, *badges[0].SubType)
}
