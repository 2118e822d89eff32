package services

import (
	"testing"

	"actionboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedBoard(t *testing.T, db *gorm.DB) models.PosterBoard {
	t.Helper()
	board := models.PosterBoard{
		Prefecture: "東京都",
		City:       "新宿区",
		Number:     "1-23",
		Status:     models.BoardStatusNotYet,
	}
	require.NoError(t, db.Create(&board).Error)
	return board
}

func TestUpdateBoardStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taro", "taro@example.com")
	board := seedBoard(t, db)

	note := "貼り付け完了"
	updated, previous, err := UpdateBoardStatus(db, board.ID, user.ID, models.BoardStatusDone, &note)
	require.NoError(t, err)
	assert.Equal(t, models.BoardStatusDone, updated.Status)
	assert.Equal(t, models.BoardStatusNotYet, previous)

	var stored models.PosterBoard
	require.NoError(t, db.First(&stored, board.ID).Error)
	assert.Equal(t, models.BoardStatusDone, stored.Status)

	var history []models.PosterBoardStatusHistory
	require.NoError(t, db.Where("board_id = ?", board.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, user.ID, history[0].UserID)
	assert.Equal(t, models.BoardStatusNotYet, history[0].PreviousStatus)
	assert.Equal(t, models.BoardStatusDone, history[0].NewStatus)
	require.NotNil(t, history[0].Note)
	assert.Equal(t, note, *history[0].Note)
}

func TestUpdateBoardStatusAppendsHistoryPerChange(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taro", "taro@example.com")
	board := seedBoard(t, db)

	steps := []models.BoardStatus{
		models.BoardStatusReserved,
		models.BoardStatusDone,
		models.BoardStatusConfirmedPosted,
	}
	for _, status := range steps {
		_, _, err := UpdateBoardStatus(db, board.ID, user.ID, status, nil)
		require.NoError(t, err)
	}

	var count int64
	db.Model(&models.PosterBoardStatusHistory{}).Where("board_id = ?", board.ID).Count(&count)
	assert.Equal(t, int64(len(steps)), count)
}

func TestUpdateBoardStatusNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taro", "taro@example.com")

	board, previous, err := UpdateBoardStatus(db, 9999, user.ID, models.BoardStatusDone, nil)
	require.ErrorIs(t, err, ErrBoardNotFound)
	assert.Nil(t, board)
	assert.Empty(t, previous)

	// A missing board must not leave any trace behind
	var historyCount int64
	db.Model(&models.PosterBoardStatusHistory{}).Count(&historyCount)
	assert.Zero(t, historyCount)
}

func TestUpdateBoardStatusInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "taro", "taro@example.com")
	board := seedBoard(t, db)

	_, _, err := UpdateBoardStatus(db, board.ID, user.ID, models.BoardStatus("finished"), nil)
	require.ErrorIs(t, err, ErrInvalidBoardState)

	var stored models.PosterBoard
	require.NoError(t, db.First(&stored, board.ID).Error)
	assert.Equal(t, models.BoardStatusNotYet, stored.Status)

	var historyCount int64
	db.Model(&models.PosterBoardStatusHistory{}).Count(&historyCount)
	assert.Zero(t, historyCount)
}

func TestGetBoardHistoryNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetBoardHistory(db, 42, 10)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}
