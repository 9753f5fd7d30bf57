package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", d.String())
	assert.Equal(t, 1, d.Weekday(), "2024-01-15 is a Monday")
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"2024-1-5",      // not zero-padded
		"15-01-2024",    // wrong field order
		"2024-02-30",    // impossible date
		"2024-13-01",    // impossible month
		"2024-01-15T00", // trailing junk
	} {
		_, err := ParseDate(in)
		require.Error(t, err, "input %q", in)
		var ambiguous AmbiguousDateError
		require.ErrorAs(t, err, &ambiguous, "input %q", in)
		assert.Equal(t, in, ambiguous.Input)
	}
}

func TestToday_TimezoneNormalization(t *testing.T) {
	// 2024-06-01 02:30 UTC is still 2024-05-31 in New York.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", Today(now, time.UTC).String())
	assert.Equal(t, "2024-05-31", Today(now, ny).String())
	assert.Equal(t, "2024-06-01", Today(now, nil).String(), "nil location falls back to UTC")
}

func TestDateArithmetic(t *testing.T) {
	a := MustDate("2024-01-29")
	assert.Equal(t, "2024-02-01", a.AddDays(3).String())
	assert.Equal(t, 3, DaysBetween(a, MustDate("2024-02-01")))
	assert.Equal(t, -3, DaysBetween(MustDate("2024-02-01"), a))
}

func TestWeeksBetween(t *testing.T) {
	// 2024-01-01 is a Monday; its week starts Sunday 2023-12-31.
	anchor := MustDate("2024-01-01")
	assert.Equal(t, 0, WeeksBetween(anchor, MustDate("2024-01-06")), "same Sunday-start week")
	assert.Equal(t, 1, WeeksBetween(anchor, MustDate("2024-01-07")), "next week begins on Sunday")
	assert.Equal(t, 2, WeeksBetween(anchor, MustDate("2024-01-15")))
}

func TestValidateClock(t *testing.T) {
	require.NoError(t, ValidateClock("08:00"))
	require.NoError(t, ValidateClock("23:59"))
	for _, in := range []string{"8:00", "08:60", "24:00", "0800", "08-00", "ab:cd", ""} {
		assert.Error(t, ValidateClock(in), "input %q", in)
	}
}
