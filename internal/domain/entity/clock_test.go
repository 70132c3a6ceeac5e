package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteOfDay(t *testing.T) {
	minutes, err := MinuteOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = MinuteOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = MinuteOfDay("9:30 AM")
	assert.Error(t, err)

	_, err = MinuteOfDay("25:00")
	assert.Error(t, err)
}

func TestFormatMinuteOfDayRoundTrip(t *testing.T) {
	for _, value := range []string{"00:00", "09:05", "13:30", "23:59"} {
		minutes, err := MinuteOfDay(value)
		require.NoError(t, err)
		assert.Equal(t, value, FormatMinuteOfDay(minutes))
	}
}

func TestDateKey(t *testing.T) {
	date := time.Date(2026, time.September, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-09-07", DateKey(date))
}
