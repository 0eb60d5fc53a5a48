package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	availability "courtbook/internal/domains/availability/service"
	"courtbook/internal/domains/block/model"
	"courtbook/internal/domains/block/model/dto"
	"courtbook/internal/domains/block/repository"
	notification "courtbook/internal/domains/notification/service"
	reasonModel "courtbook/internal/domains/reason/model"
	reasonRepo "courtbook/internal/domains/reason/repository"
	resModel "courtbook/internal/domains/reservation/model"
	resRepo "courtbook/internal/domains/reservation/repository"
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
	cacheGetBlock    = "block:get"
	cacheGetAllBlock = "block:gets"
	cacheCountBlock  = "block:count"

	restoreSavepoint = "restore_reservation"
)

var sortableFields = []string{model.FieldBlockDate, model.FieldStartHour, constant.FieldCreatedAt}

type Block interface {
	Create(ctx context.Context, req dto.CreateBlockRequest, now timezone.Civil, actor schedule.Actor) (dto.BlockReport, error)
	Apply(ctx context.Context, id string, now timezone.Civil, actor schedule.Actor) (dto.BlockReport, error)
	Update(ctx context.Context, id string, req dto.UpdateBlockRequest, now timezone.Civil, actor schedule.Actor) (dto.BlockReport, error)
	Remove(ctx context.Context, id string, now timezone.Civil, actor schedule.Actor) (dto.BlockReport, error)
	Get(ctx context.Context, id string) (dto.BlockResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlocksResponse, error)
}

type serviceImpl struct {
	blocks       repository.Block
	reservations resRepo.Reservation
	reasons      reasonRepo.Reason
	checker      availability.Checker
	notifier     notification.Notifier
	tx           postgres.Transactor
	policy       schedule.Policy
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	blocks repository.Block,
	reservations resRepo.Reservation,
	reasons reasonRepo.Reason,
	checker availability.Checker,
	notifier notification.Notifier,
	tx postgres.Transactor,
	policy schedule.Policy,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Block {
	return &serviceImpl{
		blocks:       blocks,
		reservations: reservations,
		reasons:      reasons,
		checker:      checker,
		notifier:     notifier,
		tx:           tx,
		policy:       policy,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// outcome collects what a block operation did to reservations. Notifications are sent
// from it only after the transaction has committed.
type outcome struct {
	block          model.Block
	reason         string
	suspended      []resModel.Reservation
	cancelled      []resModel.Reservation
	restored       []resModel.Reservation
	stillSuspended []resModel.Reservation
	elapsed        []resModel.Reservation
}

func (o *outcome) report() dto.BlockReport {
	report := dto.NewBlockReport(o.block)

	for _, r := range o.suspended {
		report.Suspended = append(report.Suspended, r.ID)
	}

	for _, r := range o.cancelled {
		report.Cancelled = append(report.Cancelled, r.ID)
	}

	for _, r := range o.restored {
		report.Restored = append(report.Restored, r.ID)
	}

	for _, r := range o.stillSuspended {
		report.StillSuspended = append(report.StillSuspended, r.ID)
	}

	for _, r := range o.elapsed {
		report.Elapsed = append(report.Elapsed, r.ID)
	}

	return report
}

// Create inserts the block and applies it in the same transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockRequest, now timezone.Civil, actor schedule.Actor) (res dto.BlockReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	blockRange, err := req.Range(s.policy)
	if err != nil {
		return res, err
	}

	var out outcome

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		out = outcome{block: req.ToModel(blockRange, actor.MemberID)}

		reason, err := s.activeReason(ctx, req.ReasonID)
		if err != nil {
			return err
		}

		out.reason = describe(out.block, reason)

		if err := s.blocks.Insert(ctx, out.block); err != nil {
			log.Error().Err(err).Msg("failed to insert block")

			return fmt.Errorf("failed to insert block: %w", err)
		}

		return s.apply(ctx, &out, now, actor)
	})
	if err != nil {
		return res, err
	}

	log.Info().
		Str("block", out.block.ID).
		Bool("temporary", out.block.Temporary).
		Int("suspended", len(out.suspended)).
		Int("cancelled", len(out.cancelled)).
		Msg("block created")

	s.finish(ctx, &out)

	return out.report(), nil
}

// Apply handles the reservations currently inside an active block. Reservations the block
// already suspended are not selected again, so repeating it changes nothing.
func (s *serviceImpl) Apply(ctx context.Context, id string, now timezone.Civil, actor schedule.Actor) (res dto.BlockReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.Apply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var out outcome

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		block, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		if block.IsRemoved() {
			return failure.Conflict("block has been removed") // nolint:wrapcheck
		}

		reason, err := s.reason(ctx, block.ReasonID)
		if err != nil {
			return err
		}

		out = outcome{block: block, reason: describe(block, reason)}

		return s.apply(ctx, &out, now, actor)
	})
	if err != nil {
		return res, err
	}

	s.finish(ctx, &out)

	return out.report(), nil
}

// Update changes the extent or reason of an active block. Reservations it suspended that
// fall outside the new extent are released, then the block is applied over the new one.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBlockRequest, now timezone.Civil, actor schedule.Actor) (res dto.BlockReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var out outcome

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		block, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		if block.IsRemoved() {
			return failure.Conflict("block has been removed") // nolint:wrapcheck
		}

		blockRange, err := req.Range(block, s.policy)
		if err != nil {
			return err
		}

		if req.ReasonID != constant.Empty {
			block.ReasonID = req.ReasonID
		}

		if req.SubReason != nil {
			block.SubReason = req.SubReason
		}

		reason, err := s.activeReason(ctx, block.ReasonID)
		if err != nil {
			return err
		}

		err = s.blocks.Update(ctx, req.ToFields(blockRange, actor.MemberID), shared.FilterByID(block.ID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("block", block.ID).Msg("failed to update block")

			return fmt.Errorf("failed to update block: %w", err)
		}

		block.CourtNumbers = nil
		for _, court := range blockRange.Courts {
			block.CourtNumbers = append(block.CourtNumbers, int64(court))
		}
		block.BlockDate = blockRange.Date
		block.StartHour = blockRange.StartHour
		block.EndHour = blockRange.EndHour

		out = outcome{block: block, reason: describe(block, reason)}

		err = s.release(ctx, &out, now, actor, func(r resModel.Reservation) bool {
			return block.Covers(r.Slot())
		})
		if err != nil {
			return err
		}

		return s.apply(ctx, &out, now, actor)
	})
	if err != nil {
		return res, err
	}

	log.Info().
		Str("block", out.block.ID).
		Int("restored", len(out.restored)).
		Int("suspended", len(out.suspended)).
		Msg("block updated")

	s.finish(ctx, &out)

	return out.report(), nil
}

// Remove lifts a block and restores the reservations it suspended whose slot is free
// again. A reservation whose slot is now taken, blocked or over stays suspended.
func (s *serviceImpl) Remove(ctx context.Context, id string, now timezone.Civil, actor schedule.Actor) (res dto.BlockReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		out     outcome
		removed bool
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		block, err := s.load(ctx, id)
		if err != nil {
			return err
		}

		out = outcome{block: block}
		if block.IsRemoved() {
			removed = true

			return nil
		}

		removedAt := timezone.Now()
		err = s.blocks.Update(ctx, map[string]any{
			model.FieldRemovedAt:     removedAt,
			model.FieldRemovedBy:     actor.MemberID,
			constant.FieldModifiedAt: removedAt,
			constant.FieldModifiedBy: actor.MemberID,
		}, shared.FilterByID(block.ID, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("block", block.ID).Msg("failed to remove block")

			return fmt.Errorf("failed to remove block: %w", err)
		}

		out.block.RemovedAt = &removedAt
		out.block.RemovedBy = &actor.MemberID

		return s.release(ctx, &out, now, actor, nil)
	})
	if err != nil {
		return res, err
	}

	if removed {
		log.Info().Str("block", id).Msg("block already removed")

		return out.report(), nil
	}

	log.Info().
		Str("block", out.block.ID).
		Int("restored", len(out.restored)).
		Int("still_suspended", len(out.stillSuspended)).
		Msg("block removed")

	s.finish(ctx, &out)

	return out.report(), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBlock, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for block")

		return res, nil
	}

	block, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(block)

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save block to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".block.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(sortableFields, model.FieldBlockDate, gDto.SortDirDesc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlock, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blocks")

		return res, nil
	}

	countKey := shared.BuildCacheKeyWithQuery(cacheCountBlock, req, filter)

	var total int
	if err := s.cache.Get(ctx, countKey, &total); err != nil {
		total, err = s.blocks.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count blocks")

			return res, fmt.Errorf("failed to count blocks: %w", err)
		}
	}

	models, err := s.blocks.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocks")

		return res, fmt.Errorf("failed to get blocks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, countKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save block count to cache")
		}

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocks to cache")
		}
	})

	return res, nil
}

// apply suspends or cancels the active reservations inside the block.
func (s *serviceImpl) apply(ctx context.Context, out *outcome, now timezone.Civil, actor schedule.Actor) error {
	block := out.block

	reservations, err := s.reservations.FindInRange(ctx, block.Courts(), block.BlockDate, block.StartHour, block.EndHour, now)
	if err != nil {
		log.Error().Err(err).Str("block", block.ID).Msg("failed to find reservations in block")

		return fmt.Errorf("failed to find reservations in block: %w", err)
	}

	for _, reservation := range reservations {
		fields := resModel.CancelFields(actor.MemberID, out.reason, constant.Empty)
		if block.Temporary {
			fields = resModel.SuspendFields(block.ID, out.reason, actor.MemberID)
		}

		if err := s.reservations.Update(ctx, fields, resRepo.ActiveByID(reservation.ID)); err != nil {
			log.Error().Err(err).Str("reservation", reservation.ID).Msg("failed to apply block to reservation")

			return fmt.Errorf("failed to apply block to reservation: %w", err)
		}

		if block.Temporary {
			reservation.SuspendedBy = &block.ID
			reservation.SuspensionReason = &out.reason
			out.suspended = append(out.suspended, reservation)

			continue
		}

		reservation.Status = resModel.StatusCancelled
		out.cancelled = append(out.cancelled, reservation)
	}

	return nil
}

// release lets go of the reservations the block suspended, except those keep holds on to.
// A reservation is restored only when its slot has not ended and nothing else occupies or
// blocks it. Under another temporary block the suspension moves to that block. A booking
// that takes the slot concurrently surfaces as a unique violation on restore and leaves
// the reservation suspended.
func (s *serviceImpl) release(ctx context.Context, out *outcome, now timezone.Civil, actor schedule.Actor, keep func(resModel.Reservation) bool) error {
	block := out.block

	suspended, err := s.reservations.FindSuspendedBy(ctx, block.ID)
	if err != nil {
		log.Error().Err(err).Str("block", block.ID).Msg("failed to find suspended reservations")

		return fmt.Errorf("failed to find suspended reservations: %w", err)
	}

	for _, reservation := range suspended {
		if keep != nil && keep(reservation) {
			continue
		}

		slot := reservation.Slot()

		if schedule.IsElapsed(slot, now) {
			out.elapsed = append(out.elapsed, reservation)

			continue
		}

		occupant, err := s.checker.FindConflict(ctx, slot, reservation.ID)
		if err != nil {
			return err
		}

		if occupant != nil {
			out.stillSuspended = append(out.stillSuspended, reservation)

			continue
		}

		covering, err := s.checker.FindBlock(ctx, slot, block.ID)
		if err != nil {
			return err
		}

		if covering != nil {
			if covering.Temporary {
				reason := reservation.SuspensionReason
				fields := resModel.SuspendFields(covering.ID, derefOrEmpty(reason), actor.MemberID)

				if err := s.reservations.Update(ctx, fields, resRepo.ActiveByID(reservation.ID)); err != nil {
					log.Error().Err(err).Str("reservation", reservation.ID).Msg("failed to move suspension")

					return fmt.Errorf("failed to move suspension: %w", err)
				}

				reservation.SuspendedBy = &covering.ID
			}

			out.stillSuspended = append(out.stillSuspended, reservation)

			continue
		}

		err = s.tx.Savepoint(ctx, restoreSavepoint, func(ctx context.Context) error {
			return s.reservations.Update(ctx, resModel.RestoreFields(actor.MemberID), resRepo.ActiveByID(reservation.ID))
		})
		if postgres.IsErrorCode(err, constant.PqErrorCodeUniqueViolation) {
			log.Warn().Str("reservation", reservation.ID).Msg("slot taken while restoring, reservation stays suspended")

			out.stillSuspended = append(out.stillSuspended, reservation)

			continue
		}

		if err != nil {
			log.Error().Err(err).Str("reservation", reservation.ID).Msg("failed to restore reservation")

			return fmt.Errorf("failed to restore reservation: %w", err)
		}

		reservation.SuspendedBy = nil
		reservation.SuspensionReason = nil
		reservation.SuspendedAt = nil
		out.restored = append(out.restored, reservation)
	}

	return nil
}

// finish records metrics, notifies members and drops stale cache entries.
func (s *serviceImpl) finish(ctx context.Context, out *outcome) {
	metrics.RecordSuspensions(len(out.suspended))

	for _, reservation := range out.suspended {
		s.notifier.NotifySuspended(ctx, reservation, out.block, out.reason)
	}

	for _, reservation := range out.cancelled {
		metrics.RecordCancellation(metrics.ActorBlock)
		s.notifier.NotifyCancelled(ctx, reservation, out.reason)
	}

	for _, reservation := range out.restored {
		metrics.RecordRestoration(metrics.OutcomeRestored)
		s.notifier.NotifyRestored(ctx, reservation)
	}

	for range out.stillSuspended {
		metrics.RecordRestoration(metrics.OutcomeStillSuspended)
	}

	touched := make([]resModel.Reservation, 0, len(out.suspended)+len(out.cancelled)+len(out.restored)+len(out.stillSuspended))
	touched = append(touched, out.suspended...)
	touched = append(touched, out.cancelled...)
	touched = append(touched, out.restored...)
	touched = append(touched, out.stillSuspended...)

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBlock, out.block.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete block from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlock)
		shared.InvalidateCaches(c, s.cache, cacheCountBlock)

		if len(touched) == 0 {
			return
		}

		for _, reservation := range touched {
			if err := s.cache.Delete(c, shared.BuildCacheKey(resModel.CacheGet, reservation.ID)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, resModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, resModel.CacheCount)
	})
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Block, error) {
	block, err := s.blocks.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("block", id).Msg("failed to get block")

		return block, fmt.Errorf("failed to get block: %w", err)
	}

	if block.ID == constant.Empty {
		return block, failure.NotFound("block not found") // nolint:wrapcheck
	}

	return block, nil
}

func (s *serviceImpl) reason(ctx context.Context, id string) (reasonModel.Reason, error) {
	reason, err := s.reasons.Get(ctx, shared.FilterByID(id, reasonModel.FieldID, reasonModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("reason", id).Msg("failed to get block reason")

		return reason, fmt.Errorf("failed to get block reason: %w", err)
	}

	if reason.ID == constant.Empty {
		return reason, failure.NotFound("reason not found") // nolint:wrapcheck
	}

	return reason, nil
}

// activeReason is used when a block is created or edited. Retired reasons stay valid for
// blocks that already carry them.
func (s *serviceImpl) activeReason(ctx context.Context, id string) (reasonModel.Reason, error) {
	reason, err := s.reason(ctx, id)
	if err != nil {
		return reason, err
	}

	if !reason.Active {
		return reason, failure.BadRequestFromString("reason is not active") // nolint:wrapcheck
	}

	return reason, nil
}

// describe is the text members see for a block: the reason name and, when given, the
// sub-reason.
func describe(block model.Block, reason reasonModel.Reason) string {
	if sub := block.SubReasonText(); sub != constant.Empty {
		return reason.Name + ": " + sub
	}

	return reason.Name
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
