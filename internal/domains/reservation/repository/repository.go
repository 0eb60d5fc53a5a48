package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/reservation/model"
	"courtbook/internal/schedule"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	gRepo "courtbook/shared/repository"
	"courtbook/shared/timezone"
	"fmt"
	"time"
)

const (
	argExcludeID = "exclude_id"
	argToday     = "today"
	argTodayEq   = "today_eq"
	argNowHour   = "now_hour"
	argRangeEnd  = "range_end"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FindOccupant(ctx context.Context, slot schedule.Slot, excludeID string) (model.Reservation, error)
	CountActive(ctx context.Context, memberID string, shortNotice bool, now timezone.Civil, excludeID string) (int, error)
	FindInRange(ctx context.Context, courts []int, date time.Time, startHour, endHour int, now timezone.Civil) ([]model.Reservation, error)
	FindSuspendedBy(ctx context.Context, blockID string) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindOccupant returns the active, non-suspended reservation holding slot, or the zero
// Reservation when the slot is free.
func (r *repositoryImpl) FindOccupant(ctx context.Context, slot schedule.Slot, excludeID string) (model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindOccupant")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldCourtNumber, slot.Court),
			eq(model.FieldBookingDate, slot.DateString()),
			eq(model.FieldStartHour, slot.Hour),
			eq(model.FieldStatus, model.StatusActive),
			gDto.Filter{Field: model.FieldSuspendedBy, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	reservation, err := r.Get(ctx, withExclusion(filter, excludeID))
	if err != nil {
		return reservation, fmt.Errorf("failed to find occupant of %s: %w", slot, err)
	}

	return reservation, nil
}

// CountActive counts the member's uncancelled reservations of one kind that have not ended
// at now. Suspended reservations are included.
func (r *repositoryImpl) CountActive(ctx context.Context, memberID string, shortNotice bool, now timezone.Civil, excludeID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CountActive")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldBookedFor, memberID),
			eq(model.FieldStatus, model.StatusActive),
			eq(model.FieldIsShortNotice, shortNotice),
			notEndedAt(now),
		},
	}

	count, err := r.Count(ctx, withExclusion(filter, excludeID))
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	return count, nil
}

// FindInRange returns the active, non-suspended reservations on any of courts during
// [startHour, endHour) of date that have not ended at now.
func (r *repositoryImpl) FindInRange(ctx context.Context, courts []int, date time.Time, startHour, endHour int, now timezone.Civil) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindInRange")
	defer scope.End()

	if len(courts) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCourtNumber, Value: courts, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			eq(model.FieldBookingDate, date.Format(timezone.DateLayout)),
			gDto.Filter{Field: model.FieldStartHour, Value: startHour, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{ArgName: argRangeEnd, Field: model.FieldStartHour, Value: endHour, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			eq(model.FieldStatus, model.StatusActive),
			gDto.Filter{Field: model.FieldSuspendedBy, Operator: gDto.FilterIsNull, Table: model.TableName},
			notEndedAt(now),
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldStartHour, SortDir: gDto.SortDirAsc}

	reservations, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations in range: %w", err)
	}

	return reservations, nil
}

// FindSuspendedBy returns the active reservations currently held by blockID.
func (r *repositoryImpl) FindSuspendedBy(ctx context.Context, blockID string) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindSuspendedBy")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldSuspendedBy, blockID),
			eq(model.FieldStatus, model.StatusActive),
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldStartHour, SortDir: gDto.SortDirAsc}

	reservations, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations suspended by block %s: %w", blockID, err)
	}

	return reservations, nil
}

func eq(field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func withExclusion(filter gDto.FilterGroup, excludeID string) gDto.FilterGroup {
	if excludeID == constant.Empty {
		return filter
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  argExcludeID,
		Field:    model.FieldID,
		Value:    excludeID,
		Operator: gDto.FilterOperatorNotEq,
		Table:    model.TableName,
	})

	return filter
}

// notEndedAt matches reservations whose end lies after now: a later day, or today with an
// end hour past the current hour.
func notEndedAt(now timezone.Civil) gDto.FilterGroup {
	today := now.Date().Format(timezone.DateLayout)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: argToday, Field: model.FieldBookingDate, Value: today, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{ArgName: argTodayEq, Field: model.FieldBookingDate, Value: today, Operator: gDto.FilterOperatorEq, Table: model.TableName},
					gDto.Filter{ArgName: argNowHour, Field: model.FieldEndHour, Value: now.Hour(), Operator: gDto.FilterOperatorGreater, Table: model.TableName},
				},
			},
		},
	}
}

// ActiveByID matches the reservation only while it is still active, so a concurrent
// cancellation turns a transition into a no-op instead of overwriting it.
func ActiveByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldID, id),
			eq(model.FieldStatus, model.StatusActive),
		},
	}
}
