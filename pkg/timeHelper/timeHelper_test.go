package timehelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRaceDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"zulu":         "2025-06-01T14:00:00Z",
		"offset":       "2025-06-01T16:00:00+02:00",
		"naive":        "2025-06-01T14:00:00",
		"naive millis": "2025-06-01T14:00:00.000",
		"space":        "2025-06-01 14:00:00",
		"minutes":      "2025-06-01T14:00",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseRaceDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	day, err := ParseRaceDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), day)
}

func TestParseRaceDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "01/06/2025"} {
		_, err := ParseRaceDate(in)
		assert.Error(t, err, in)
	}
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	oslo := time.FixedZone("CET", 60*60)
	at := time.Date(2025, 6, 1, 15, 0, 0, 0, oslo)

	assert.Equal(t, at.UTC(), NormalizeDate(at, now))
	assert.Equal(t, at.UTC(), NormalizeDate(&at, now))
	assert.Equal(t, at.UTC(), NormalizeDate("2025-06-01T14:00:00", now))
	assert.Equal(t, now, NormalizeDate("garbage", now))
	assert.Equal(t, now, NormalizeDate(nil, now))
	assert.Equal(t, now, NormalizeDate(time.Time{}, now))
	assert.Equal(t, now, NormalizeDate(42, now))
}

func TestFormatRaceDate(t *testing.T) {
	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-01T14:00:00Z", FormatRaceDate(at))

	back, err := ParseRaceDate(FormatRaceDate(at))
	require.NoError(t, err)
	assert.Equal(t, at, back)
}
