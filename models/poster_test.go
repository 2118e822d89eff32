package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoardStatus(t *testing.T) {
	for _, status := range AllBoardStatuses {
		parsed, err := ParseBoardStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseBoardStatus("")
	assert.Error(t, err)
	_, err = ParseBoardStatus("DONE") // case sensitive
	assert.Error(t, err)
	_, err = ParseBoardStatus("finished")
	assert.Error(t, err)
}

func TestBoardStatusCode(t *testing.T) {
	// Codes are positional and part of the CSV export contract
	assert.Equal(t, 0, BoardStatusNotYet.Code())
	assert.Equal(t, 1, BoardStatusDone.Code())
	assert.Equal(t, 2, BoardStatusError.Code())
	assert.Equal(t, 3, BoardStatusReserved.Code())
	assert.Equal(t, 4, BoardStatusNeedsConfirmation.Code())
	assert.Equal(t, 5, BoardStatusErrorInProgress.Code())
	assert.Equal(t, 6, BoardStatusDeleted.Code())
	assert.Equal(t, 7, BoardStatusConfirmedPosted.Code())

	assert.Equal(t, -1, BoardStatus("bogus").Code())
}

func TestBoardStatusValid(t *testing.T) {
	for _, status := range AllBoardStatuses {
		assert.True(t, status.Valid(), "status=%s", status)
	}
	assert.False(t, BoardStatus("").Valid())
	assert.False(t, BoardStatus("unknown").Valid())
}
