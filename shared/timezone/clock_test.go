package timezone_test

import (
	"courtbook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		zone    string
		wantErr bool
	}{
		{name: "iana zone", zone: "Europe/Berlin"},
		{name: "utc", zone: "UTC"},
		{name: "empty falls back to utc", zone: ""},
		{name: "unknown zone", zone: "Mars/Olympus_Mons", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, err := timezone.New(tt.zone)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, clock)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, clock.Location())
		})
	}
}

func TestClock_At(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	clock := timezone.Fixed(berlin, time.Now())

	t.Run("winter offset", func(t *testing.T) {
		civil, err := clock.At(time.Date(2024, 1, 15, 17, 50, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, "2024-01-15 18:50", civil.String())
		assert.Equal(t, 18, civil.Hour())
		assert.Equal(t, 50, civil.Minute())
	})

	t.Run("summer offset", func(t *testing.T) {
		civil, err := clock.At(time.Date(2024, 7, 15, 16, 45, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, "2024-07-15 18:45", civil.String())
	})

	t.Run("instant resolves to the next civil day", func(t *testing.T) {
		civil, err := clock.At(time.Date(2024, 7, 15, 22, 30, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), civil.Date())
	})

	t.Run("zero instant fails", func(t *testing.T) {
		_, err := clock.At(time.Time{})

		assert.ErrorIs(t, err, timezone.ErrUnresolvedInstant)
	})
}

func TestClock_Now(t *testing.T) {
	instant := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := timezone.Fixed(time.UTC, instant)

	assert.True(t, clock.Now().Equal(timezone.NewCivil(2024, time.March, 10, 9, 0)))
}

func TestCivil(t *testing.T) {
	start := timezone.CivilOf(time.Date(2024, 3, 31, 0, 0, 0, 0, time.FixedZone("", 7200)), 3, 0)
	now := timezone.NewCivil(2024, time.March, 31, 1, 50)

	// wall-clock arithmetic ignores the DST jump at 02:00
	assert.Equal(t, 70*time.Minute, start.Sub(now))
	assert.True(t, now.Before(start))
	assert.True(t, start.After(now))
	assert.Equal(t, "2024-03-31 02:45", start.Add(-15*time.Minute).String())
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), start.Date())
	assert.False(t, start.IsZero())
	assert.True(t, timezone.Civil{}.IsZero())
}

func TestParseDate(t *testing.T) {
	date, err := timezone.ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.June, date.Month())

	_, err = timezone.ParseDate("01/06/2024")
	assert.Error(t, err)
}

func TestParseHour(t *testing.T) {
	hour, err := timezone.ParseHour("06:00")
	require.NoError(t, err)
	assert.Equal(t, 6, hour)

	hour, err = timezone.ParseHour("21:00")
	require.NoError(t, err)
	assert.Equal(t, 21, hour)

	_, err = timezone.ParseHour("10:30")
	assert.Error(t, err)

	_, err = timezone.ParseHour("ten")
	assert.Error(t, err)
}
