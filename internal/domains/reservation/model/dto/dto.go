package dto

import (
	"courtbook/internal/domains/reservation/model"
	"courtbook/internal/schedule"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type SlotRequest struct {
	Court     int    `json:"court"      validate:"required,min=1"`
	Date      string `json:"date"       validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,hourly"`
}

// ToSlot converts the request into a slot. Malformed values are a bad request.
func (s SlotRequest) ToSlot() (schedule.Slot, error) {
	date, err := timezone.ParseDate(s.Date)
	if err != nil {
		return schedule.Slot{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	hour, err := timezone.ParseHour(s.StartTime)
	if err != nil {
		return schedule.Slot{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return schedule.NewSlot(s.Court, date, hour), nil
}

type CreateReservationRequest struct {
	SlotRequest
	// BookedFor defaults to the caller.
	BookedFor string `json:"booked_for" validate:"omitempty,uuid"`
}

type ModifyReservationRequest struct {
	SlotRequest
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type AvailabilityRequest struct {
	SlotRequest
	BookedFor string `json:"booked_for" validate:"omitempty,uuid"`
}

func NewReservation(slot schedule.Slot, kind schedule.Kind, bookedFor, bookedBy string) model.Reservation {
	now := timezone.Now()

	return model.Reservation{
		ID:            uuid.NewString(),
		CourtNumber:   slot.Court,
		BookingDate:   slot.Date,
		StartHour:     slot.Hour,
		EndHour:       slot.EndHour(),
		BookedFor:     bookedFor,
		BookedBy:      bookedBy,
		IsShortNotice: kind.IsShortNotice(),
		Status:        model.StatusActive,
		Metadata:      gModel.NewMetadata(bookedBy, now),
	}
}

type ReservationResponse struct {
	ID               string  `json:"id"`
	Court            int     `json:"court"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	BookedFor        string  `json:"booked_for"`
	BookedBy         string  `json:"booked_by"`
	Kind             string  `json:"kind"`
	Status           string  `json:"status"`
	Suspended        bool    `json:"suspended"`
	SuspendedBy      *string `json:"suspended_by,omitempty"`
	SuspensionReason *string `json:"suspension_reason,omitempty"`
	CancelReason     *string `json:"cancel_reason,omitempty"`
	ReplacedBy       *string `json:"replaced_by,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	slot := model.Slot()

	r.ID = model.ID
	r.Court = model.CourtNumber
	r.Date = slot.DateString()
	r.StartTime = slot.Start().Format(timezone.ClockLayout)
	r.EndTime = slot.End().Format(timezone.ClockLayout)
	r.BookedFor = model.BookedFor
	r.BookedBy = model.BookedBy
	r.Kind = string(model.Kind())
	r.Status = string(model.Status)
	r.Suspended = model.IsSuspended()
	r.SuspendedBy = model.SuspendedBy
	r.SuspensionReason = model.SuspensionReason
	r.CancelReason = model.CancelReason
	r.ReplacedBy = model.ReplacedBy
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// AvailabilityResponse reports whether a booking would be accepted right now. A refusal
// carries the same reason and detail the booking itself would be rejected with.
type AvailabilityResponse struct {
	Allowed bool           `json:"allowed"`
	Kind    string         `json:"kind,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Message string         `json:"message,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}
