package schedule

import (
	"context"

	"courtbook/shared/constant"
	"courtbook/shared/metrics"
)

// Actor is the member performing an operation.
type Actor struct {
	MemberID string
	Admin    bool
}

// ActorFromContext reads the authenticated member placed in ctx by the auth middleware.
// Admin and superadmin roles act as administrators.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	memberID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if memberID == "" {
		return Actor{}, false
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{
		MemberID: memberID,
		Admin:    role == constant.RoleAdmin || role == constant.RoleSuperAdmin,
	}, true
}

// Owns reports whether the actor is a party to the reservation.
func (a Actor) Owns(bookedFor, bookedBy string) bool {
	return a.MemberID != "" && (a.MemberID == bookedFor || a.MemberID == bookedBy)
}

func (a Actor) Label() string {
	if a.Admin {
		return metrics.ActorAdmin
	}

	return metrics.ActorMember
}
