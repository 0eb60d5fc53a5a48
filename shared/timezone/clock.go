package timezone

import (
	"courtbook/config"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	civilLayout = DateLayout + " " + ClockLayout
)

var ErrUnresolvedInstant = errors.New("instant cannot be resolved to a civil time")

// Civil is a wall-clock reading in the club's zone. The wall fields are carried in
// a UTC time.Time so arithmetic between readings never crosses an offset change.
type Civil struct {
	wall time.Time
}

// NewCivil builds a reading from calendar fields.
func NewCivil(year int, month time.Month, day, hour, minute int) Civil {
	return Civil{wall: time.Date(year, month, day, hour, minute, 0, 0, time.UTC)}
}

// CivilOf combines the calendar day of date with an hour and minute of that day.
// Only the year, month and day fields of date are read.
func CivilOf(date time.Time, hour, minute int) Civil {
	return NewCivil(date.Year(), date.Month(), date.Day(), hour, minute)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return date, nil
}

// ParseHour parses an "HH:MM" time of day that falls exactly on the hour.
func ParseHour(value string) (int, error) {
	clock, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}

	if clock.Minute() != 0 {
		return 0, fmt.Errorf("time %q is not on the hour", value)
	}

	return clock.Hour(), nil
}

// Date returns the calendar day at midnight, suitable for DATE columns.
func (c Civil) Date() time.Time {
	return time.Date(c.wall.Year(), c.wall.Month(), c.wall.Day(), 0, 0, 0, 0, time.UTC)
}

func (c Civil) Hour() int   { return c.wall.Hour() }
func (c Civil) Minute() int { return c.wall.Minute() }

func (c Civil) Before(o Civil) bool { return c.wall.Before(o.wall) }
func (c Civil) After(o Civil) bool  { return c.wall.After(o.wall) }
func (c Civil) Equal(o Civil) bool  { return c.wall.Equal(o.wall) }

func (c Civil) Add(d time.Duration) Civil   { return Civil{wall: c.wall.Add(d)} }
func (c Civil) Sub(o Civil) time.Duration   { return c.wall.Sub(o.wall) }
func (c Civil) IsZero() bool                { return c.wall.IsZero() }
func (c Civil) String() string              { return c.wall.Format(civilLayout) }
func (c Civil) Format(layout string) string { return c.wall.Format(layout) }

// Clock resolves instants to the club's civil calendar. It is the only place in
// the service that reads the wall clock for a booking decision.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New loads the named IANA zone. An unknown zone is an error, never a silent fallback.
func New(name string) (*Clock, error) {
	if name == "" {
		name = defaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	return &Clock{loc: loc, now: time.Now}, nil
}

// NewClock builds the service clock from configuration and stops the process when
// the configured zone cannot be loaded. It also installs the zone for audit stamps.
func NewClock(cfg *config.Config) *Clock {
	clock, err := New(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to initialize clock")
	}

	Use(clock.loc)
	log.Info().Str("timezone", clock.loc.String()).Msg("Club timezone initialized")

	return clock
}

// Fixed returns a clock whose Now always reports instant. Used by tests and tooling.
func Fixed(loc *time.Location, instant time.Time) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return instant }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current civil time.
func (c *Clock) Now() Civil {
	civil, err := c.At(c.now())
	if err != nil {
		log.Panic().Err(err).Msg("wall clock returned an unresolvable instant")
	}

	return civil
}

// At resolves an explicit instant, used as an override for deterministic evaluation.
func (c *Clock) At(instant time.Time) (Civil, error) {
	if instant.IsZero() || c.loc == nil {
		return Civil{}, ErrUnresolvedInstant
	}

	local := instant.In(c.loc)

	return NewCivil(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute()).
		Add(time.Duration(local.Second())*time.Second + time.Duration(local.Nanosecond())), nil
}
