package dto

import (
	"courtbook/internal/schedule"
	"courtbook/shared/timezone"
)

// CheckRequest asks whether MemberID may book Slot at Now. ExcludeID names a reservation
// being replaced, which neither occupies the slot nor counts toward the limit.
type CheckRequest struct {
	MemberID  string
	Slot      schedule.Slot
	Now       timezone.Civil
	ExcludeID string
}
