package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"courtbook/infras/otel"
	"courtbook/internal/domains/availability/model/dto"
	blockModel "courtbook/internal/domains/block/model"
	blockRepo "courtbook/internal/domains/block/repository"
	resModel "courtbook/internal/domains/reservation/model"
	resRepo "courtbook/internal/domains/reservation/repository"
	"courtbook/internal/schedule"
	"courtbook/shared/constant"
	"courtbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Checker decides whether a slot is free and whether a member may take it. It runs inside
// the caller's transaction when ctx carries one.
type Checker interface {
	FindConflict(ctx context.Context, slot schedule.Slot, excludeID string) (*resModel.Reservation, error)
	FindBlock(ctx context.Context, slot schedule.Slot, excludeID string) (*blockModel.Block, error)
	CountActive(ctx context.Context, memberID string, now timezone.Civil, kind schedule.Kind, excludeID string) (int, error)
	CheckBookingAllowed(ctx context.Context, req dto.CheckRequest) (schedule.Kind, error)
}

type serviceImpl struct {
	reservations resRepo.Reservation
	blocks       blockRepo.Block
	policy       schedule.Policy
	otel         otel.Otel
}

func New(reservations resRepo.Reservation, blocks blockRepo.Block, policy schedule.Policy, otel otel.Otel) Checker {
	return &serviceImpl{
		reservations: reservations,
		blocks:       blocks,
		policy:       policy,
		otel:         otel,
	}
}

func (s *serviceImpl) FindConflict(ctx context.Context, slot schedule.Slot, excludeID string) (res *resModel.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FindConflict")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupant, err := s.reservations.FindOccupant(ctx, slot, excludeID)
	if err != nil {
		log.Error().Err(err).Str("slot", slot.String()).Msg("failed to look up slot occupant")

		return nil, fmt.Errorf("failed to find conflict: %w", err)
	}

	if occupant.ID == constant.Empty {
		return nil, nil
	}

	return &occupant, nil
}

func (s *serviceImpl) FindBlock(ctx context.Context, slot schedule.Slot, excludeID string) (res *blockModel.Block, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FindBlock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	block, err := s.blocks.FindCovering(ctx, slot, excludeID)
	if err != nil {
		log.Error().Err(err).Str("slot", slot.String()).Msg("failed to look up covering block")

		return nil, fmt.Errorf("failed to find block: %w", err)
	}

	if block.ID == constant.Empty {
		return nil, nil
	}

	return &block, nil
}

// CountActive counts only reservations booked for memberID; bookings a member made for
// someone else count against that other member.
func (s *serviceImpl) CountActive(ctx context.Context, memberID string, now timezone.Civil, kind schedule.Kind, excludeID string) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CountActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.reservations.CountActive(ctx, memberID, kind.IsShortNotice(), now, excludeID)
	if err != nil {
		log.Error().Err(err).Str("member", memberID).Msg("failed to count active reservations")

		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}

	return res, nil
}

// CheckBookingAllowed rejects, in order, an ended slot, a blocked slot, a taken slot and a
// member at the limit for the booking's kind. On success it returns that kind.
func (s *serviceImpl) CheckBookingAllowed(ctx context.Context, req dto.CheckRequest) (kind schedule.Kind, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CheckBookingAllowed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	kind, err = schedule.Classify(req.Slot, req.Now, s.policy)
	if err != nil {
		return "", err
	}

	block, err := s.FindBlock(ctx, req.Slot, constant.Empty)
	if err != nil {
		return "", err
	}

	if block != nil {
		return "", schedule.SlotBlocked(block.ID, block.ReasonID, block.Temporary)
	}

	conflict, err := s.FindConflict(ctx, req.Slot, req.ExcludeID)
	if err != nil {
		return "", err
	}

	if conflict != nil {
		return "", schedule.SlotConflict(conflict.ID)
	}

	active, err := s.CountActive(ctx, req.MemberID, req.Now, kind, req.ExcludeID)
	if err != nil {
		return "", err
	}

	if limit := s.policy.Limit(kind); active >= limit {
		return "", schedule.LimitExceeded(kind, limit, active)
	}

	return kind, nil
}
