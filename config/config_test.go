package config_test

import (
	"courtbook/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.CourtCount = 6
	cfg.Booking.FirstSlotHour = 6
	cfg.Booking.LastSlotHour = 21
	cfg.Booking.RegularLimit = 2
	cfg.Booking.ShortNoticeLimit = 1
	cfg.Booking.ShortNoticeMinutes = 15
	cfg.Booking.CancellationWindowMinutes = 15
	cfg.Notification.Driver = "log"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "no courts", mutate: func(cfg *config.Config) { cfg.Booking.CourtCount = 0 }, wantErr: "BOOKING_COURT_COUNT"},
		{name: "inverted hours", mutate: func(cfg *config.Config) { cfg.Booking.FirstSlotHour = 22 }, wantErr: "slot hours"},
		{name: "hour past midnight", mutate: func(cfg *config.Config) { cfg.Booking.LastSlotHour = 24 }, wantErr: "slot hours"},
		{name: "negative limit", mutate: func(cfg *config.Config) { cfg.Booking.ShortNoticeLimit = -1 }, wantErr: "limits"},
		{name: "negative window", mutate: func(cfg *config.Config) { cfg.Booking.CancellationWindowMinutes = -5 }, wantErr: "windows"},
		{name: "unknown driver", mutate: func(cfg *config.Config) { cfg.Notification.Driver = "smtp" }, wantErr: "NOTIFICATION_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("BOOKING_COURT_COUNT", "4")
	t.Setenv("BOOKING_LAST_SLOT_HOUR", "20")
	t.Setenv("APP_TIMEZONE", "Europe/Berlin")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary")
	t.Setenv("NOTIFICATION_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Booking.CourtCount)
	assert.Equal(t, 6, cfg.Booking.FirstSlotHour)
	assert.Equal(t, 20, cfg.Booking.LastSlotHour)
	assert.Equal(t, "Europe/Berlin", cfg.App.Timezone)
	assert.Equal(t, "primary", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, "schema_migrations", cfg.DB.Postgres.MigrationTable)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BOOKING_FIRST_SLOT_HOUR", "23")
	t.Setenv("BOOKING_LAST_SLOT_HOUR", "6")

	_, err := config.Load()
	assert.ErrorContains(t, err, "invalid configuration")
}
