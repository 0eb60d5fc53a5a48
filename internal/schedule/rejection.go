package schedule

import (
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"fmt"
)

func PastSlot(slot Slot, now timezone.Civil) error {
	return failure.Rejected(failure.ReasonPastSlot, "the requested slot has already ended", map[string]any{ //nolint:wrapcheck
		"slot_end": slot.End().String(),
		"now":      now.String(),
	})
}

func SlotConflict(reservationID string) error {
	return failure.Rejected(failure.ReasonSlotConflict, "the slot is already reserved", map[string]any{ //nolint:wrapcheck
		"reservation_id": reservationID,
	})
}

func SlotBlocked(blockID, reasonID string, temporary bool) error {
	return failure.Rejected(failure.ReasonSlotBlocked, "the slot is blocked", map[string]any{ //nolint:wrapcheck
		"block_id":  blockID,
		"reason_id": reasonID,
		"temporary": temporary,
	})
}

func LimitExceeded(kind Kind, limit, active int) error {
	return failure.Rejected(failure.ReasonLimitExceeded, //nolint:wrapcheck
		fmt.Sprintf("the member already holds %d active %s reservation(s)", active, kind),
		map[string]any{
			"kind":   string(kind),
			"limit":  limit,
			"active": active,
		})
}

func CancellationWindowViolated(slot Slot, policy Policy) error {
	return failure.Rejected(failure.ReasonCancellationWindowViolated, "the cancellation window has closed", map[string]any{ //nolint:wrapcheck
		"deadline": CancellationDeadline(slot, policy).String(),
		"start":    slot.Start().String(),
	})
}

func ShortNoticeImmutable(reservationID string) error {
	return failure.Rejected(failure.ReasonShortNoticeImmutable, "short-notice reservations cannot be changed by their owner", map[string]any{ //nolint:wrapcheck
		"reservation_id": reservationID,
	})
}

func AlreadyCancelled(reservationID string) error {
	return failure.Rejected(failure.ReasonAlreadyCancelled, "the reservation is already cancelled", map[string]any{ //nolint:wrapcheck
		"reservation_id": reservationID,
	})
}

func ReservationSuspended(reservationID, blockID string) error {
	return failure.Rejected(failure.ReasonReservationSuspended, "the reservation is suspended by a block", map[string]any{ //nolint:wrapcheck
		"reservation_id": reservationID,
		"block_id":       blockID,
	})
}
