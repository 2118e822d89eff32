package services

import (
	"testing"

	"actionboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidReferralCode(t *testing.T) {
	db := setupTestDB(t)

	code := "ABCD2345"
	owner := models.User{Name: "hanako", Email: "hanako@example.com", Password: "hashed", ReferralCode: &code}
	require.NoError(t, db.Create(&owner).Error)

	valid, referrer, err := IsValidReferralCode(db, code)
	require.NoError(t, err)
	assert.True(t, valid)
	require.NotNil(t, referrer)
	assert.Equal(t, owner.ID, referrer.ID)

	// Whitespace around the code is tolerated
	valid, _, err = IsValidReferralCode(db, "  "+code+"  ")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestIsValidReferralCodeUnknown(t *testing.T) {
	db := setupTestDB(t)

	valid, referrer, err := IsValidReferralCode(db, "NOSUCHCODE")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Nil(t, referrer)

	valid, _, err = IsValidReferralCode(db, "")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestIsValidReferralCodeDeletedOwner(t *testing.T) {
	db := setupTestDB(t)

	code := "GONE2345"
	owner := models.User{Name: "deleted", Email: "deleted@example.com", Password: "hashed", ReferralCode: &code, IsDeleted: true}
	require.NoError(t, db.Create(&owner).Error)

	valid, referrer, err := IsValidReferralCode(db, code)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Nil(t, referrer)
}

func TestIsEmailAlreadyUsedInReferral(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)
	referrer := seedUser(t, db, "hanako", "hanako@example.com")

	mission := models.Mission{
		Slug:                 "refer-friend",
		Title:                "友達を紹介しよう",
		Difficulty:           2,
		RequiredArtifactType: models.ArtifactTypeReferral,
	}
	require.NoError(t, db.Create(&mission).Error)

	achievement := models.Achievement{UserID: referrer.ID, MissionID: mission.ID, SeasonID: season.ID}
	require.NoError(t, db.Create(&achievement).Error)

	stored := "taro@example.com"
	artifact := models.MissionArtifact{
		AchievementID: achievement.ID,
		UserID:        referrer.ID,
		ArtifactType:  models.ArtifactTypeReferral,
		TextContent:   &stored,
	}
	require.NoError(t, db.Create(&artifact).Error)

	used, err := IsEmailAlreadyUsedInReferral(db, "taro@example.com")
	require.NoError(t, err)
	assert.True(t, used)

	// Lookup normalizes case and whitespace before comparing
	used, err = IsEmailAlreadyUsedInReferral(db, "  TARO@Example.COM  ")
	require.NoError(t, err)
	assert.True(t, used)

	used, err = IsEmailAlreadyUsedInReferral(db, "someone-else@example.com")
	require.NoError(t, err)
	assert.False(t, used)

	used, err = IsEmailAlreadyUsedInReferral(db, "")
	require.NoError(t, err)
	assert.False(t, used)
}

func TestIsEmailAlreadyUsedInReferralIgnoresOtherArtifactTypes(t *testing.T) {
	db := setupTestDB(t)
	season := seedSeason(t, db)
	user := seedUser(t, db, "taro", "taro@example.com")

	mission := models.Mission{Slug: "sns-share", Title: "シェア", Difficulty: 1, RequiredArtifactType: models.ArtifactTypeText}
	require.NoError(t, db.Create(&mission).Error)
	achievement := models.Achievement{UserID: user.ID, MissionID: mission.ID, SeasonID: season.ID}
	require.NoError(t, db.Create(&achievement).Error)

	text := "someone@example.com"
	artifact := models.MissionArtifact{
		AchievementID: achievement.ID,
		UserID:        user.ID,
		ArtifactType:  models.ArtifactTypeText,
		TextContent:   &text,
	}
	require.NoError(t, db.Create(&artifact).Error)

	used, err := IsEmailAlreadyUsedInReferral(db, "someone@example.com")
	require.NoError(t, err)
	assert.False(t, used)
}
