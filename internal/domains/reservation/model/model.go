package model

import (
	"courtbook/internal/schedule"
	"courtbook/shared/model"
	"courtbook/shared/timezone"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID               = "id"
	FieldCourtNumber      = "court_number"
	FieldBookingDate      = "booking_date"
	FieldStartHour        = "start_hour"
	FieldEndHour          = "end_hour"
	FieldBookedFor        = "booked_for"
	FieldBookedBy         = "booked_by"
	FieldIsShortNotice    = "is_short_notice"
	FieldStatus           = "status"
	FieldSuspendedBy      = "suspended_by"
	FieldSuspensionReason = "suspension_reason"
	FieldSuspendedAt      = "suspended_at"
	FieldCancelledAt      = "cancelled_at"
	FieldCancelledBy      = "cancelled_by"
	FieldCancelReason     = "cancel_reason"
	FieldReplacedBy       = "replaced_by"
)

// Status is the stored lifecycle state. Elapsed is never stored; it follows from the
// evaluation time.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type Reservation struct {
	ID               string     `db:"id"`
	CourtNumber      int        `db:"court_number"`
	BookingDate      time.Time  `db:"booking_date"`
	StartHour        int        `db:"start_hour"`
	EndHour          int        `db:"end_hour"`
	BookedFor        string     `db:"booked_for"`
	BookedBy         string     `db:"booked_by"`
	IsShortNotice    bool       `db:"is_short_notice"`
	Status           Status     `db:"status"`
	SuspendedBy      *string    `db:"suspended_by"`
	SuspensionReason *string    `db:"suspension_reason"`
	SuspendedAt      *time.Time `db:"suspended_at"`
	CancelledAt      *time.Time `db:"cancelled_at"`
	CancelledBy      *string    `db:"cancelled_by"`
	CancelReason     *string    `db:"cancel_reason"`
	ReplacedBy       *string    `db:"replaced_by"`
	model.Metadata
}

func (r Reservation) Slot() schedule.Slot {
	return schedule.NewSlot(r.CourtNumber, r.BookingDate, r.StartHour)
}

func (r Reservation) Kind() schedule.Kind {
	return schedule.KindOf(r.IsShortNotice)
}

func (r Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

func (r Reservation) IsSuspended() bool {
	return r.SuspendedBy != nil
}

// SuspendingBlock returns the id of the block holding the reservation, or an empty string.
func (r Reservation) SuspendingBlock() string {
	if r.SuspendedBy == nil {
		return ""
	}

	return *r.SuspendedBy
}

// IsActive reports whether the reservation still occupies its slot at now.
func (r Reservation) IsActive(now timezone.Civil) bool {
	return !r.IsCancelled() && schedule.IsActive(r.BookingDate, r.EndHour, now)
}

func (r Reservation) IsElapsed(now timezone.Civil) bool {
	return !schedule.IsActive(r.BookingDate, r.EndHour, now)
}

// Recipients returns the members to notify about this reservation, without duplicates.
func (r Reservation) Recipients() []string {
	if r.BookedBy == "" || r.BookedBy == r.BookedFor {
		return []string{r.BookedFor}
	}

	return []string{r.BookedFor, r.BookedBy}
}
