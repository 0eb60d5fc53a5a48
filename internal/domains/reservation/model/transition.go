package model

import (
	"courtbook/shared/constant"
	"courtbook/shared/timezone"
)

// Cache prefixes for reservation reads. Every writer of reservations invalidates them.
const (
	CacheGet    = "reservation:get"
	CacheGetAll = "reservation:gets"
	CacheCount  = "reservation:count"
)

// CancelFields are the columns written when a reservation is cancelled. Cancelling always
// clears a suspension, so a cancelled reservation is never also suspended.
func CancelFields(actorID, reason, replacedBy string) map[string]any {
	now := timezone.Now()

	fields := map[string]any{
		FieldStatus:              StatusCancelled,
		FieldCancelledAt:         now,
		FieldCancelledBy:         nullable(actorID),
		FieldCancelReason:        nullable(reason),
		FieldSuspendedBy:         nil,
		FieldSuspensionReason:    nil,
		FieldSuspendedAt:         nil,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actorID,
	}

	if replacedBy != constant.Empty {
		fields[FieldReplacedBy] = replacedBy
	}

	return fields
}

// SuspendFields attach a reservation to the temporary block holding its slot.
func SuspendFields(blockID, reason, actorID string) map[string]any {
	now := timezone.Now()

	return map[string]any{
		FieldSuspendedBy:         blockID,
		FieldSuspensionReason:    nullable(reason),
		FieldSuspendedAt:         now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actorID,
	}
}

// RestoreFields clear a suspension and nothing else.
func RestoreFields(actorID string) map[string]any {
	return map[string]any{
		FieldSuspendedBy:         nil,
		FieldSuspensionReason:    nil,
		FieldSuspendedAt:         nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actorID,
	}
}

func nullable(value string) any {
	if value == constant.Empty {
		return nil
	}

	return value
}
