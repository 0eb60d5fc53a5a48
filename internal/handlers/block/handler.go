package block

import (
	"courtbook/infras/otel"
	"courtbook/internal/domains/block/model"
	"courtbook/internal/domains/block/model/dto"
	"courtbook/internal/domains/block/service"
	"courtbook/internal/handlers/request"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/timezone"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Block
	clock   *timezone.Clock
	otel    otel.Otel
}

func New(service service.Block, clock *timezone.Clock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		clock:   clock,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlock)
		routerGroup.Get("/", handler.GetBlocks)
		routerGroup.Get("/{id}", handler.GetBlockByID)
		routerGroup.Patch("/{id}", handler.UpdateBlock)
		routerGroup.Delete("/{id}", handler.RemoveBlock)
		routerGroup.Post("/{id}/apply", handler.ApplyBlock)
	})
}

// CreateBlock blocks courts for a range of hours.
// @Summary Create a block
// @Description Block one or more courts. Temporary blocks suspend the reservations they cover, the others cancel them.
// @Tags Block
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockRequest true "Create Block Request"
// @Success 201 {object} response.Data[dto.BlockReport] "Block created and applied"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [post]
// @Security BearerAuth
func (handler *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.CreateBlockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	now, err := request.Now(r, handler.clock, actor)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Create(ctx, req, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create block")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Block " + report.Block.ID + " created by " + actor.MemberID)

	response.WithJSON(w, http.StatusCreated, report)
}

// GetBlocks lists blocks.
// @Summary Get all blocks
// @Tags Block
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court query int false "Filter by blocked court"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param temporary query bool false "Filter by block kind"
// @Param removed query bool false "Include removed blocks"
// @Success 200 {object} response.Data[dto.GetBlocksResponse] "List of blocks"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [get]
// @Security BearerAuth
func (handler *Handler) GetBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlocks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup, err := filters(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	blocks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, blocks)
}

// GetBlockByID retrieves a block by its ID.
// @Summary Get a block by ID
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Data[dto.BlockResponse] "Block details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBlockByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	block, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get block by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, block)
}

// UpdateBlock changes a block and reconciles the reservations it covers.
// @Summary Update a block
// @Description Change courts, range, reason or sub-reason. Reservations no longer covered are released, newly covered ones are affected.
// @Tags Block
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Param request body dto.UpdateBlockRequest true "Update Block Request"
// @Success 200 {object} response.Data[dto.BlockReport] "Reconciliation report"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlock")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBlockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	now, err := request.Now(r, handler.clock, actor)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Update(ctx, id, req, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update block")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// RemoveBlock removes a block and restores what it suspended.
// @Summary Remove a block
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Data[dto.BlockReport] "Restoration report"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveBlock")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	now, err := request.Now(r, handler.clock, actor)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Remove(ctx, id, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to remove block")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Block " + id + " removed by " + actor.MemberID)

	response.WithJSON(w, http.StatusOK, report)
}

// ApplyBlock re-applies a block to the reservations it covers.
// @Summary Apply a block
// @Description Idempotent. Affects reservations created inside the block range since it was last applied.
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Data[dto.BlockReport] "Application report"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id}/apply [post]
// @Security BearerAuth
func (handler *Handler) ApplyBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyBlock")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	now, err := request.Now(r, handler.clock, actor)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Apply(ctx, id, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to apply block")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

func filters(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if court := query.Get(constant.RequestParamCourt); court != "" {
		if err := validator.ValidateParam(constant.RequestParamCourt, court, "number"); err != nil {
			return filterGroup, err
		}

		number, _ := strconv.Atoi(court)
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCourtNumbers,
			ArgName:  "court",
			Operator: gDto.FilterOperatorAny,
			Value:    number,
			Table:    model.TableName,
		})
	}

	if date := query.Get(constant.RequestParamDate); date != "" {
		if err := validator.ValidateParam(constant.RequestParamDate, date, "date"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBlockDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	temporary, err := shared.BoolParam(query, constant.RequestParamTemporary)
	if err != nil {
		return filterGroup, err
	}

	if temporary != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTemporary,
			Operator: gDto.FilterOperatorEq,
			Value:    *temporary,
			Table:    model.TableName,
		})
	}

	if removed, _ := strconv.ParseBool(query.Get(constant.RequestParamRemoved)); !removed {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRemovedAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}
