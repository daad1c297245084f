package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestFixedClockConvertsToTenantZone(t *testing.T) {
	at := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	clock := FixedClock{At: at}

	now := clock.NowIn("America/Sao_Paulo")

	assert.True(t, now.Equal(at))
	assert.Equal(t, 11, now.Hour())
}

func TestStartOfMonthUsesTenantZone(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	// 02:00 UTC on the 1st is still the last day of the previous month in São Paulo.
	at := time.Date(2026, 4, 1, 2, 0, 0, 0, time.UTC)

	start := StartOfMonth(at, loc)

	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 1, start.Day())
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime("2026-03-02", "09:30", "America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, "America/Sao_Paulo", ts.Location().String())

	_, err = ParseDateTime("2026-03-02", "9h", "America/Sao_Paulo")
	assert.Error(t, err)
}
