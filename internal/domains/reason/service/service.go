package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"courtbook/config"
	"courtbook/infras/otel"
	"courtbook/infras/postgres"
	"courtbook/internal/domains/reason/model"
	"courtbook/internal/domains/reason/model/dto"
	"courtbook/internal/domains/reason/repository"
	"courtbook/shared"
	"courtbook/shared/cache"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReason    = "reason:get"
	cacheGetAllReason = "reason:gets"
	cacheCountReason  = "reason:count"
)

var sortableFields = []string{model.FieldName, constant.FieldCreatedAt, constant.FieldModifiedAt}

type Reason interface {
	Create(ctx context.Context, req dto.CreateReasonRequest) (dto.ReasonResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReasonsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReasonResponse, error)
	Update(ctx context.Context, req dto.UpdateReasonRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Reason
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Reason, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Reason {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReasonRequest) (res dto.ReasonResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	reason := req.ToModel(user)

	if err = s.repo.Insert(ctx, reason); err != nil {
		if postgres.IsErrorCode(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict(fmt.Sprintf("reason %q already exists", req.Name)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create reason")

		return res, fmt.Errorf("failed to create reason: %w", err)
	}

	res.FromModel(reason)

	shared.Detach(ctx, func(c context.Context) {
		shared.InvalidateCaches(c, s.cache, cacheGetAllReason)
		shared.InvalidateCaches(c, s.cache, cacheCountReason)
	})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReasonsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(sortableFields, model.FieldName, gDto.SortDirAsc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReason, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reasons")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reasons")

		return res, fmt.Errorf("failed to count reasons: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reasons")

		return res, fmt.Errorf("failed to get reasons: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reasons to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReason, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reason count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reasons")

		return res, fmt.Errorf("failed to count reasons: %w", err)
	}

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reason count to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReasonResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReason, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reason")

		return res, nil
	}

	reason, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reason")

		return res, fmt.Errorf("failed to get reason: %w", err)
	}

	if reason.ID == constant.Empty {
		return res, failure.NotFound("reason not found") // nolint:wrapcheck
	}

	res.FromModel(reason)

	cached := res

	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reason to cache")
		}
	})

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReasonRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check reason existence")

		return fmt.Errorf("failed to check reason existence: %w", err)
	}

	if !exist {
		return failure.NotFound("reason not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if postgres.IsErrorCode(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(fmt.Sprintf("reason %q already exists", req.Name)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update reason")

		return fmt.Errorf("failed to update reason: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reason.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reason exists")

		return fmt.Errorf("failed to check if reason exists: %w", err)
	}

	if !exist {
		return failure.NotFound("reason not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if postgres.IsErrorCode(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("reason is referenced by a block") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete reason")

		return fmt.Errorf("failed to delete reason: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.Detach(ctx, func(c context.Context) {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReason, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reason from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReason)
		shared.InvalidateCaches(c, s.cache, cacheCountReason)
	})
}
