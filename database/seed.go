// database/seed.go - reference data loaded at boot
package database

import (
	"log"
	"time"

	"actionboard/models"
)

func intPtr(n int) *int { return &n }

// SeedReferenceData inserts the default season and mission catalog when
// the tables are empty. Safe to call on every boot.
func SeedReferenceData() {
	db := GetDB()

	var seasonCount int64
	db.Model(&models.Season{}).Count(&seasonCount)
	if seasonCount == 0 {
		season := models.Season{
			Slug:      "season-1",
			Name:      "シーズン1",
			StartDate: time.Now().UTC(),
			IsActive:  true,
		}
		if err := db.Create(&season).Error; err != nil {
			log.Printf("Failed to seed default season: %v", err)
		} else {
			log.Println("✅ Seeded default season")
		}
	}

	var missionCount int64
	db.Model(&models.Mission{}).Count(&missionCount)
	if missionCount > 0 {
		return
	}

	missions := []models.Mission{
		{
			Slug:                 "sns-share",
			Title:                "公式投稿をSNSでシェアしよう",
			Category:             "SNS",
			Difficulty:           1,
			RequiredArtifactType: models.ArtifactTypeLink,
		},
		{
			Slug:                 "poster-placement",
			Title:                "ポスターを掲示板に貼ろう",
			Category:             "ポスター",
			Difficulty:           3,
			RequiredArtifactType: models.ArtifactTypePoster,
		},
		{
			Slug:                 "posting",
			Title:                "チラシをポスティングしよう",
			Category:             "ポスティング",
			Difficulty:           2,
			RequiredArtifactType: models.ArtifactTypePosting,
		},
		{
			Slug:                 "street-photo",
			Title:                "街頭演説の写真を投稿しよう",
			Category:             "イベント",
			Difficulty:           2,
			RequiredArtifactType: models.ArtifactTypeImageGeo,
		},
		{
			Slug:                 "refer-friend",
			Title:                "友達を紹介しよう",
			Category:             "紹介",
			Difficulty:           2,
			RequiredArtifactType: models.ArtifactTypeReferral,
		},
		{
			Slug:                 "first-profile",
			Title:                "プロフィールを設定しよう",
			Category:             "はじめての方へ",
			Difficulty:           1,
			MaxAchievementCount:  intPtr(1),
			RequiredArtifactType: models.ArtifactTypeNone,
		},
	}

	if err := db.Create(&missions).Error; err != nil {
		log.Printf("Failed to seed missions: %v", err)
		return
	}
	log.Printf("✅ Seeded %d missions", len(missions))
}
