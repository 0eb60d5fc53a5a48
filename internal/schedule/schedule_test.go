package schedule_test

import (
	"context"
	"courtbook/internal/schedule"
	"courtbook/shared/constant"
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policy = schedule.Policy{
	CourtCount:         6,
	FirstSlotHour:      6,
	LastSlotHour:       21,
	RegularLimit:       2,
	ShortNoticeLimit:   1,
	ShortNoticeWindow:  15 * time.Minute,
	CancellationWindow: 15 * time.Minute,
}

var day = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) timezone.Civil {
	return timezone.CivilOf(day, hour, minute)
}

func TestClassify(t *testing.T) {
	slot := schedule.NewSlot(3, day, 10)

	tests := []struct {
		name       string
		now        timezone.Civil
		wantKind   schedule.Kind
		wantReason string
	}{
		{name: "day before is regular", now: timezone.CivilOf(day.AddDate(0, 0, -1), 23, 0), wantKind: schedule.KindRegular},
		{name: "09:44 is regular", now: at(9, 44), wantKind: schedule.KindRegular},
		{name: "one second before the window is regular", now: at(9, 44).Add(59 * time.Second), wantKind: schedule.KindRegular},
		{name: "09:45 opens the short-notice window", now: at(9, 45), wantKind: schedule.KindShortNotice},
		{name: "09:46 is short-notice", now: at(9, 46), wantKind: schedule.KindShortNotice},
		{name: "slot underway is short-notice", now: at(10, 30), wantKind: schedule.KindShortNotice},
		{name: "last minute of the slot is short-notice", now: at(10, 59), wantKind: schedule.KindShortNotice},
		{name: "slot end is past", now: at(11, 0), wantReason: failure.ReasonPastSlot},
		{name: "next day is past", now: timezone.CivilOf(day.AddDate(0, 0, 1), 8, 0), wantReason: failure.ReasonPastSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := schedule.Classify(slot, tt.now, policy)

			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestIsShortNotice(t *testing.T) {
	slot := schedule.NewSlot(1, day, 10)

	assert.False(t, schedule.IsShortNotice(slot, at(9, 44), policy))
	assert.True(t, schedule.IsShortNotice(slot, at(9, 45), policy))
	assert.True(t, schedule.IsShortNotice(slot, at(10, 0), policy))
	assert.False(t, schedule.IsShortNotice(slot, at(11, 0), policy))
	assert.False(t, schedule.IsShortNotice(slot, at(23, 0), policy))
}

func TestIsActive(t *testing.T) {
	assert.True(t, schedule.IsActive(day, 19, at(18, 59)))
	assert.False(t, schedule.IsActive(day, 19, at(19, 0)))
	assert.True(t, schedule.IsActive(day.AddDate(0, 0, 1), 7, at(23, 0)))
	assert.False(t, schedule.IsActive(day.AddDate(0, 0, -1), 22, at(6, 0)))
}

func TestCanSelfCancel(t *testing.T) {
	slot := schedule.NewSlot(2, day, 14)

	assert.Equal(t, "2024-06-01 13:45", schedule.CancellationDeadline(slot, policy).String())
	assert.True(t, schedule.CanSelfCancel(slot, at(13, 44), policy))
	assert.True(t, schedule.CanSelfCancel(slot, at(13, 44).Add(59*time.Second), policy))
	assert.False(t, schedule.CanSelfCancel(slot, at(13, 45), policy))
	assert.False(t, schedule.CanSelfCancel(slot, at(13, 50), policy))
	assert.False(t, schedule.CanSelfCancel(slot, at(14, 30), policy))
}

func TestSlot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		slot    schedule.Slot
		wantErr bool
	}{
		{name: "first slot", slot: schedule.NewSlot(1, day, 6)},
		{name: "last slot", slot: schedule.NewSlot(6, day, 21)},
		{name: "court zero", slot: schedule.NewSlot(0, day, 10), wantErr: true},
		{name: "court above count", slot: schedule.NewSlot(7, day, 10), wantErr: true},
		{name: "before opening", slot: schedule.NewSlot(1, day, 5), wantErr: true},
		{name: "after last start", slot: schedule.NewSlot(1, day, 22), wantErr: true},
		{name: "missing date", slot: schedule.Slot{Court: 1, Hour: 10}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate(policy)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Empty(t, failure.GetReason(err))
		})
	}
}

func TestSlot(t *testing.T) {
	slot := schedule.NewSlot(4, time.Date(2024, 6, 1, 17, 30, 0, 0, time.FixedZone("", 3600)), 20)

	assert.Equal(t, "2024-06-01", slot.DateString())
	assert.Equal(t, 21, slot.EndHour())
	assert.Equal(t, "2024-06-01 20:00", slot.Start().String())
	assert.Equal(t, "2024-06-01 21:00", slot.End().String())
	assert.Equal(t, "court 4 2024-06-01 20:00", slot.String())
}

func TestPolicy_Limit(t *testing.T) {
	assert.Equal(t, 2, policy.Limit(schedule.KindRegular))
	assert.Equal(t, 1, policy.Limit(schedule.KindShortNotice))
}

func TestActor(t *testing.T) {
	member := schedule.Actor{MemberID: "m-1"}
	admin := schedule.Actor{MemberID: "a-1", Admin: true}

	assert.True(t, member.Owns("m-1", "m-2"))
	assert.True(t, member.Owns("m-2", "m-1"))
	assert.False(t, member.Owns("m-2", "m-3"))
	assert.False(t, schedule.Actor{}.Owns("", ""))
	assert.Equal(t, "member", member.Label())
	assert.Equal(t, "admin", admin.Label())
}

func TestRejections(t *testing.T) {
	slot := schedule.NewSlot(3, day, 14)

	err := schedule.LimitExceeded(schedule.KindRegular, 2, 2)
	assert.Equal(t, failure.ReasonLimitExceeded, failure.GetReason(err))
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

	var fail *failure.Failure
	require.ErrorAs(t, schedule.CancellationWindowViolated(slot, policy), &fail)
	assert.Equal(t, "2024-06-01 13:45", fail.Detail["deadline"])
	assert.Equal(t, "2024-06-01 14:00", fail.Detail["start"])

	require.ErrorAs(t, schedule.SlotBlocked("b-1", "r-1", true), &fail)
	assert.Equal(t, http.StatusConflict, fail.Code)
	assert.Equal(t, true, fail.Detail["temporary"])
}

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "m-1")

	actor, ok := schedule.ActorFromContext(context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser))
	assert.True(t, ok)
	assert.Equal(t, schedule.Actor{MemberID: "m-1"}, actor)

	actor, ok = schedule.ActorFromContext(context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin))
	assert.True(t, ok)
	assert.True(t, actor.Admin)

	_, ok = schedule.ActorFromContext(context.Background())
	assert.False(t, ok)
}
