// Package schedule holds the time rules of the booking engine: the shape of a slot,
// how a booking is classified, when a reservation stops occupying its slot and when
// self-service cancellation closes. Every function takes the evaluation time as an
// argument; nothing here reads the wall clock.
package schedule

import (
	"courtbook/config"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"fmt"
	"time"
)

const SlotDuration = time.Hour

// Kind is the classification of a reservation, frozen when it is created.
type Kind string

const (
	KindRegular     Kind = "regular"
	KindShortNotice Kind = "short_notice"
)

func KindOf(shortNotice bool) Kind {
	if shortNotice {
		return KindShortNotice
	}

	return KindRegular
}

func (k Kind) IsShortNotice() bool {
	return k == KindShortNotice
}

// Policy is the club's booking configuration.
type Policy struct {
	CourtCount         int
	FirstSlotHour      int
	LastSlotHour       int
	RegularLimit       int
	ShortNoticeLimit   int
	ShortNoticeWindow  time.Duration
	CancellationWindow time.Duration
}

func NewPolicy(cfg *config.Config) Policy {
	return Policy{
		CourtCount:         cfg.Booking.CourtCount,
		FirstSlotHour:      cfg.Booking.FirstSlotHour,
		LastSlotHour:       cfg.Booking.LastSlotHour,
		RegularLimit:       cfg.Booking.RegularLimit,
		ShortNoticeLimit:   cfg.Booking.ShortNoticeLimit,
		ShortNoticeWindow:  time.Duration(cfg.Booking.ShortNoticeMinutes) * time.Minute,
		CancellationWindow: time.Duration(cfg.Booking.CancellationWindowMinutes) * time.Minute,
	}
}

// Limit returns the number of concurrently active reservations a member may hold of kind.
func (p Policy) Limit(kind Kind) int {
	if kind.IsShortNotice() {
		return p.ShortNoticeLimit
	}

	return p.RegularLimit
}

// Slot is one hour on one court. It is derived, never stored.
type Slot struct {
	Court int
	Date  time.Time
	Hour  int
}

// NewSlot keeps only the calendar day of date.
func NewSlot(court int, date time.Time, hour int) Slot {
	return Slot{
		Court: court,
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Hour:  hour,
	}
}

func (s Slot) Start() timezone.Civil {
	return timezone.CivilOf(s.Date, s.Hour, 0)
}

func (s Slot) End() timezone.Civil {
	return s.Start().Add(SlotDuration)
}

func (s Slot) EndHour() int {
	return s.Hour + 1
}

func (s Slot) DateString() string {
	return s.Date.Format(timezone.DateLayout)
}

func (s Slot) String() string {
	return fmt.Sprintf("court %d %s", s.Court, s.Start())
}

// Validate rejects slots outside the club's courts or operating hours as malformed input.
func (s Slot) Validate(policy Policy) error {
	if s.Date.IsZero() {
		return failure.BadRequestFromString("date is required") //nolint:wrapcheck
	}

	if s.Court < 1 || s.Court > policy.CourtCount {
		return failure.BadRequestFromString(fmt.Sprintf("court must be between 1 and %d", policy.CourtCount)) //nolint:wrapcheck
	}

	if s.Hour < policy.FirstSlotHour || s.Hour > policy.LastSlotHour {
		return failure.BadRequestFromString(fmt.Sprintf( //nolint:wrapcheck
			"start time must be between %02d:00 and %02d:00", policy.FirstSlotHour, policy.LastSlotHour))
	}

	return nil
}

// IsShortNotice reports whether now lies in [start - window, end).
func IsShortNotice(slot Slot, now timezone.Civil, policy Policy) bool {
	windowStart := slot.Start().Add(-policy.ShortNoticeWindow)

	return !now.Before(windowStart) && now.Before(slot.End())
}

// IsActive reports whether a reservation ending at endHour on date still occupies its slot.
func IsActive(date time.Time, endHour int, now timezone.Civil) bool {
	return now.Before(timezone.CivilOf(date, endHour, 0))
}

// IsElapsed reports whether the slot has ended.
func IsElapsed(slot Slot, now timezone.Civil) bool {
	return !IsActive(slot.Date, slot.EndHour(), now)
}

// Classify decides the kind of a new booking. An ended slot is a PastSlot rejection.
func Classify(slot Slot, now timezone.Civil, policy Policy) (Kind, error) {
	if IsElapsed(slot, now) {
		return "", PastSlot(slot, now)
	}

	return KindOf(IsShortNotice(slot, now, policy)), nil
}

// CancellationDeadline is the last instant, exclusive, at which an owner may cancel.
func CancellationDeadline(slot Slot, policy Policy) timezone.Civil {
	return slot.Start().Add(-policy.CancellationWindow)
}

// CanSelfCancel reports whether now is strictly before the cancellation deadline.
func CanSelfCancel(slot Slot, now timezone.Civil, policy Policy) bool {
	return now.Before(CancellationDeadline(slot, policy))
}
