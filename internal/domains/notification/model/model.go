package model

import (
	blockModel "courtbook/internal/domains/block/model"
	resModel "courtbook/internal/domains/reservation/model"
	"courtbook/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types double as routing keys on the broker.
const (
	EventCreated   = "reservation.created"
	EventModified  = "reservation.modified"
	EventCancelled = "reservation.cancelled"
	EventSuspended = "reservation.suspended"
	EventRestored  = "reservation.restored"
)

type Event struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	OccurredAt  time.Time            `json:"occurred_at"`
	Recipients  []string             `json:"recipients"`
	Reservation ReservationSnapshot  `json:"reservation"`
	Previous    *ReservationSnapshot `json:"previous,omitempty"`
	Block       *BlockSnapshot       `json:"block,omitempty"`
	Reason      string               `json:"reason,omitempty"`
}

func NewEvent(eventType string, reservation resModel.Reservation) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		OccurredAt:  time.Now().UTC(),
		Recipients:  reservation.Recipients(),
		Reservation: NewReservationSnapshot(reservation),
	}
}

type ReservationSnapshot struct {
	ID        string `json:"id"`
	Court     int    `json:"court"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	BookedFor string `json:"booked_for"`
	BookedBy  string `json:"booked_by"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	Suspended bool   `json:"suspended"`
}

func NewReservationSnapshot(reservation resModel.Reservation) ReservationSnapshot {
	slot := reservation.Slot()

	return ReservationSnapshot{
		ID:        reservation.ID,
		Court:     reservation.CourtNumber,
		Date:      slot.DateString(),
		StartTime: slot.Start().Format(timezone.ClockLayout),
		EndTime:   slot.End().Format(timezone.ClockLayout),
		BookedFor: reservation.BookedFor,
		BookedBy:  reservation.BookedBy,
		Kind:      string(reservation.Kind()),
		Status:    string(reservation.Status),
		Suspended: reservation.IsSuspended(),
	}
}

type BlockSnapshot struct {
	ID        string `json:"id"`
	Courts    []int  `json:"courts"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ReasonID  string `json:"reason_id"`
	SubReason string `json:"sub_reason,omitempty"`
	Temporary bool   `json:"temporary"`
}

func NewBlockSnapshot(block blockModel.Block) *BlockSnapshot {
	return &BlockSnapshot{
		ID:        block.ID,
		Courts:    block.Courts(),
		Date:      block.BlockDate.Format(timezone.DateLayout),
		StartTime: fmt.Sprintf("%02d:00", block.StartHour),
		EndTime:   fmt.Sprintf("%02d:00", block.EndHour),
		ReasonID:  block.ReasonID,
		SubReason: block.SubReasonText(),
		Temporary: block.Temporary,
	}
}
