package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-club/internal/models"
)

func TestResolveFallsBackWithoutSchedule(t *testing.T) {
	w, err := ResolveWorkingHours(nil, monday(0, 0), PolicyFor(FallbackOpen))
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, monday(9, 0), w.Start)
	assert.Equal(t, monday(18, 0), w.End)
	assert.False(t, w.HasBreak)

	w, err = ResolveWorkingHours(nil, monday(0, 0), PolicyFor(FallbackClosed))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestResolveMissingWeekdayIsClosed(t *testing.T) {
	tuesday := monday(0, 0).AddDate(0, 0, 1)

	w, err := ResolveWorkingHours(mondaySchedule(), tuesday, PolicyFor(FallbackOpen))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestResolveInactiveDay(t *testing.T) {
	entries := mondaySchedule()
	entries[0].Active = false

	w, err := ResolveWorkingHours(entries, monday(0, 0), PolicyFor(FallbackOpen))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestResolveIgnoresMalformedBreak(t *testing.T) {
	entries := []models.WorkingHours{{
		Weekday:    int(time.Monday),
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "13:00",
		LunchEnd:   "12:00",
		Active:     true,
	}}

	w, err := ResolveWorkingHours(entries, monday(0, 0), nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.False(t, w.HasBreak)
}

func TestResolveRejectsBadClock(t *testing.T) {
	entries := mondaySchedule()
	entries[0].StartTime = "9h"

	_, err := ResolveWorkingHours(entries, monday(0, 0), nil)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("13:45")
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}
