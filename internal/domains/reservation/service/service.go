package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	avDto "courtbook/internal/domains/availability/model/dto"
	availability "courtbook/internal/domains/availability/service"
	memberRepo "courtbook/internal/domains/member/repository"
	notification "courtbook/internal/domains/notification/service"
	"courtbook/internal/domains/reservation/model"
	"courtbook/internal/domains/reservation/model/dto"
	"courtbook/internal/domains/reservation/repository"
	"courtbook/internal/schedule"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"
	"courtbook/shared/metrics"
	"courtbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	operationCreate = "create"
	operationModify = "modify"
	operationCancel = "cancel"

	modifiedReason = "modified"
)

var sortableFields = []string{
	model.FieldBookingDate,
	model.FieldStartHour,
	model.FieldCourtNumber,
	constant.FieldCreatedAt,
}

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest, now timezone.Civil, actor schedule.Actor) (dto.ReservationResponse, error)
	Modify(ctx context.Context, id string, req dto.ModifyReservationRequest, now timezone.Civil, actor schedule.Actor) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelReservationRequest, now timezone.Civil, actor schedule.Actor) error
	Get(ctx context.Context, id string, actor schedule.Actor) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, actor schedule.Actor) (dto.GetReservationsResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest, now timezone.Civil, actor schedule.Actor) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo     repository.Reservation
	members  memberRepo.Member
	checker  availability.Checker
	notifier notification.Notifier
	tx       postgres.Transactor
	policy   schedule.Policy
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Reservation,
	members memberRepo.Member,
	checker availability.Checker,
	notifier notification.Notifier,
	tx postgres.Transactor,
	policy schedule.Policy,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		members:  members,
		checker:  checker,
		notifier: notifier,
		tx:       tx,
		policy:   policy,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create books a slot for req.BookedFor, or for the actor when empty. The kind returned
// by the availability check is stored and never recomputed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest, now timezone.Civil, actor schedule.Actor) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := req.ToSlot()
	if err != nil {
		return res, err
	}

	if err = slot.Validate(s.policy); err != nil {
		return res, err
	}

	bookedFor := req.BookedFor
	if bookedFor == constant.Empty {
		bookedFor = actor.MemberID
	}

	if err = s.ensureMember(ctx, bookedFor); err != nil {
		return res, err
	}

	var reservation model.Reservation

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		kind, err := s.checker.CheckBookingAllowed(ctx, avDto.CheckRequest{
			MemberID: bookedFor,
			Slot:     slot,
			Now:      now,
		})
		if err != nil {
			return err
		}

		reservation = dto.NewReservation(slot, kind, bookedFor, actor.MemberID)

		return s.insert(ctx, reservation)
	})
	if err != nil {
		metrics.RecordRejection(operationCreate, failure.GetReason(err))

		return res, concealCounts(err, bookedFor, actor)
	}

	log.Info().
		Str("reservation", reservation.ID).
		Str("slot", slot.String()).
		Str("kind", string(reservation.Kind())).
		Msg("reservation created")

	metrics.RecordReservationCreated(string(reservation.Kind()))
	s.notifier.NotifyCreated(ctx, reservation)
	s.invalidate(ctx, reservation.ID)

	res.FromModel(reservation)

	return res, nil
}

// Modify moves an active regular reservation to another slot. The old record is cancelled
// and a new one created in the same transaction, so either both happen or neither does.
func (s *serviceImpl) Modify(ctx context.Context, id string, req dto.ModifyReservationRequest, now timezone.Civil, actor schedule.Actor) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := req.ToSlot()
	if err != nil {
		return res, err
	}

	if err = slot.Validate(s.policy); err != nil {
		return res, err
	}

	var previous, current model.Reservation

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		previous, err = s.load(ctx, id)
		if err != nil {
			return err
		}

		if err := s.checkModifiable(previous, now, actor); err != nil {
			return err
		}

		kind, err := s.checker.CheckBookingAllowed(ctx, avDto.CheckRequest{
			MemberID:  previous.BookedFor,
			Slot:      slot,
			Now:       now,
			ExcludeID: previous.ID,
		})
		if err != nil {
			return err
		}

		current = dto.NewReservation(slot, kind, previous.BookedFor, previous.BookedBy)
		current.CreatedBy = actor.MemberID
		current.ModifiedBy = actor.MemberID

		err = s.repo.Update(ctx, model.CancelFields(actor.MemberID, modifiedReason, current.ID), repository.ActiveByID(previous.ID))
		if err != nil {
			log.Error().Err(err).Str("reservation", previous.ID).Msg("failed to supersede reservation")

			return fmt.Errorf("failed to supersede reservation: %w", err)
		}

		return s.insert(ctx, current)
	})
	if err != nil {
		metrics.RecordRejection(operationModify, failure.GetReason(err))

		return res, err
	}

	log.Info().
		Str("previous", previous.ID).
		Str("reservation", current.ID).
		Str("slot", slot.String()).
		Msg("reservation modified")

	metrics.RecordReservationModified()
	s.notifier.NotifyModified(ctx, previous, current)
	s.invalidate(ctx, previous.ID, current.ID)

	res.FromModel(current)

	return res, nil
}

// Cancel ends a reservation. Owners are bound by the short-notice rule and the
// cancellation window, which is waived while the reservation is suspended. Admins may
// cancel anything that is not already terminal.
func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelReservationRequest, now timezone.Civil, actor schedule.Actor) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var reservation model.Reservation

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reservation, err = s.load(ctx, id)
		if err != nil {
			return err
		}

		if err := s.checkCancellable(reservation, now, actor); err != nil {
			return err
		}

		err = s.repo.Update(ctx, model.CancelFields(actor.MemberID, req.Reason, constant.Empty), repository.ActiveByID(reservation.ID))
		if err != nil {
			log.Error().Err(err).Str("reservation", reservation.ID).Msg("failed to cancel reservation")

			return fmt.Errorf("failed to cancel reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		metrics.RecordRejection(operationCancel, failure.GetReason(err))

		return err
	}

	log.Info().
		Str("reservation", reservation.ID).
		Str("actor", actor.MemberID).
		Bool("admin", actor.Admin).
		Msg("reservation cancelled")

	reservation.Status = model.StatusCancelled
	reservation.SuspendedBy = nil

	metrics.RecordCancellation(actor.Label())
	s.notifier.NotifyCancelled(ctx, reservation, req.Reason)
	s.invalidate(ctx, reservation.ID)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string, actor schedule.Actor) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")
	} else {
		reservation, err := s.load(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(reservation)

		cached := res

		shared.Detach(ctx, func(c context.Context) {
			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save reservation to cache")
			}
		})
	}

	if !actor.Admin && !actor.Owns(res.BookedFor, res.BookedBy) {
		return dto.ReservationResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(sortableFields, model.FieldBookingDate, gDto.SortDirDesc)
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	})

	return res, nil
}

// GetMine lists reservations the actor is a party to, either as booked-for or booked-by.
func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, actor schedule.Actor) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	mine := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: "mine_for", Field: model.FieldBookedFor, Value: actor.MemberID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "mine_by", Field: model.FieldBookedBy, Value: actor.MemberID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	scoped := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{mine}}
	if len(filter.Filters) > 0 {
		scoped.Filters = append(scoped.Filters, filter)
	}

	return s.GetAll(ctx, req, scoped)
}

// CheckAvailability reports what a booking of the slot would get right now without
// booking it.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest, now timezone.Civil, actor schedule.Actor) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := req.ToSlot()
	if err != nil {
		return res, err
	}

	if err = slot.Validate(s.policy); err != nil {
		return res, err
	}

	memberID := req.BookedFor
	if memberID == constant.Empty {
		memberID = actor.MemberID
	}

	kind, err := s.checker.CheckBookingAllowed(ctx, avDto.CheckRequest{MemberID: memberID, Slot: slot, Now: now})
	if err != nil {
		err = concealCounts(err, memberID, actor)

		var fail *failure.Failure
		if errors.As(err, &fail) && fail.Reason != constant.Empty {
			return dto.AvailabilityResponse{
				Reason:  fail.Reason,
				Message: fail.Message,
				Detail:  fail.Detail,
			}, nil
		}

		return res, err
	}

	return dto.AvailabilityResponse{Allowed: true, Kind: string(kind)}, nil
}

func (s *serviceImpl) checkModifiable(reservation model.Reservation, now timezone.Civil, actor schedule.Actor) error {
	if !actor.Admin && !actor.Owns(reservation.BookedFor, reservation.BookedBy) {
		return failure.Forbidden("you may only change your own reservations") // nolint:wrapcheck
	}

	if reservation.IsCancelled() {
		return schedule.AlreadyCancelled(reservation.ID)
	}

	if reservation.IsElapsed(now) {
		return schedule.PastSlot(reservation.Slot(), now)
	}

	if reservation.IsSuspended() {
		return schedule.ReservationSuspended(reservation.ID, reservation.SuspendingBlock())
	}

	if reservation.IsShortNotice {
		return schedule.ShortNoticeImmutable(reservation.ID)
	}

	if !actor.Admin && !schedule.CanSelfCancel(reservation.Slot(), now, s.policy) {
		return schedule.CancellationWindowViolated(reservation.Slot(), s.policy)
	}

	return nil
}

func (s *serviceImpl) checkCancellable(reservation model.Reservation, now timezone.Civil, actor schedule.Actor) error {
	if reservation.IsCancelled() {
		return schedule.AlreadyCancelled(reservation.ID)
	}

	if reservation.IsElapsed(now) {
		return schedule.PastSlot(reservation.Slot(), now)
	}

	if actor.Admin {
		return nil
	}

	if !actor.Owns(reservation.BookedFor, reservation.BookedBy) {
		return failure.Forbidden("you may only cancel your own reservations") // nolint:wrapcheck
	}

	if reservation.IsShortNotice {
		return schedule.ShortNoticeImmutable(reservation.ID)
	}

	if reservation.IsSuspended() {
		return nil
	}

	if !schedule.CanSelfCancel(reservation.Slot(), now, s.policy) {
		return schedule.CancellationWindowViolated(reservation.Slot(), s.policy)
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation", id).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// insert maps a unique violation on the slot index to a conflict; a concurrent booking
// won the slot between our check and our write.
func (s *serviceImpl) insert(ctx context.Context, reservation model.Reservation) error {
	err := s.repo.Insert(ctx, reservation)
	if err == nil {
		return nil
	}

	if postgres.IsErrorCode(err, constant.PqErrorCodeUniqueViolation) {
		return schedule.SlotConflict(constant.Empty)
	}

	log.Error().Err(err).Str("slot", reservation.Slot().String()).Msg("failed to insert reservation")

	return fmt.Errorf("failed to insert reservation: %w", err)
}

func (s *serviceImpl) ensureMember(ctx context.Context, id string) error {
	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("member", id).Msg("failed to get member")

		return fmt.Errorf("failed to get member: %w", err)
	}

	if member.ID == constant.Empty || !member.Active {
		return failure.NotFound("member not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	shared.Detach(ctx, func(c context.Context) {
		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	})
}

// concealCounts keeps another member's reservation counts out of a limit refusal. Only
// administrators and the member themselves see them.
func concealCounts(err error, memberID string, actor schedule.Actor) error {
	if actor.Admin || memberID == actor.MemberID {
		return err
	}

	if !failure.IsReason(err, failure.ReasonLimitExceeded) {
		return err
	}

	return failure.Rejected(failure.ReasonLimitExceeded, "the member has reached the reservation limit", nil) //nolint:wrapcheck
}
