package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_Fallback(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestDayBounds(t *testing.T) {
	loc := Location("Europe/Paris")
	at := time.Date(2026, 3, 29, 23, 30, 0, 0, loc)

	start, end := DayBounds(at)

	assert.Equal(t, time.Date(2026, 3, 29, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 30, 0, 0, 0, 0, loc), end)
	// DST switch day is 23 hours long
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestParseDay(t *testing.T) {
	loc := Location("Europe/Paris")
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	d, err := ParseDay("", loc, now)
	require.NoError(t, err)
	assert.Equal(t, now.In(loc), d)

	d, err = ParseDay("2026-01-02", loc, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, loc), d)

	_, err = ParseDay("02/01/2026", loc, now)
	assert.Error(t, err)
}
