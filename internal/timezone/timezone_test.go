package timezone

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, "Asia/Jakarta", Location("Asia/Jakarta").String())
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2024-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = DayRange("10/03/2024", time.UTC)
	assert.Error(t, err)
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2024, 5, 17, 13, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)
}
