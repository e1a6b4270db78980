package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("parses a valid date", func(t *testing.T) {
		date := ParseDate("2025-06-15")

		require.NotNil(t, date)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("rejects an empty string", func(t *testing.T) {
		assert.Nil(t, ParseDate(""))
	})

	t.Run("rejects other formats", func(t *testing.T) {
		assert.Nil(t, ParseDate("15/06/2025"))
		assert.Nil(t, ParseDate("2025-6-15"))
		assert.Nil(t, ParseDate("2025-06-15T10:00:00Z"))
	})
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 66.7, RoundWithOneDecimalPlace(66.666))
	assert.Equal(t, 0.0, RoundWithOneDecimalPlace(0))
	assert.Equal(t, 133.33, RoundWithTwoDecimalPlace(133.333333))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestGenerateInviteToken(t *testing.T) {
	token, err := GenerateInviteToken()

	require.NoError(t, err)
	assert.Len(t, token, 32)

	other, err := GenerateInviteToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateSessionID(t *testing.T) {
	id, err := GenerateSessionID()

	require.NoError(t, err)
	assert.Len(t, id, 12)
}
