package reason

import (
	"courtbook/infras/otel"
	"courtbook/internal/domains/reason/model"
	"courtbook/internal/domains/reason/model/dto"
	"courtbook/internal/domains/reason/service"
	"courtbook/shared"
	"courtbook/shared/constant"
	gDto "courtbook/shared/dto"
	"courtbook/shared/validator"
	"courtbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reason
	otel    otel.Otel
}

func New(service service.Reason, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reasons", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReason)
		routerGroup.Get("/", handler.GetReasons)
		routerGroup.Get("/{id}", handler.GetReasonByID)
		routerGroup.Patch("/{id}", handler.UpdateReason)
		routerGroup.Delete("/{id}", handler.DeleteReason)
	})
}

// CreateReason handles the creation of a block reason.
// @Summary Create a block reason
// @Tags Reason
// @Accept json
// @Produce json
// @Param request body dto.CreateReasonRequest true "Create Reason Request"
// @Success 201 {object} response.Data[dto.ReasonResponse] "Reason created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reasons [post]
// @Security BearerAuth
func (handler *Handler) CreateReason(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReason")
	defer scope.End()

	req := dto.CreateReasonRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reason, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reason")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, reason)
}

// GetReasons lists block reasons.
// @Summary Get all block reasons
// @Tags Reason
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetReasonsResponse] "List of reasons"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reasons [get]
// @Security BearerAuth
func (handler *Handler) GetReasons(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReasons")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	if err := queryParams.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(constant.RequestParamName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	active, err := shared.BoolParam(r.URL.Query(), constant.RequestParamActive)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	reasons, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reasons")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reasons)
}

// GetReasonByID retrieves a block reason by its ID.
// @Summary Get a block reason by ID
// @Tags Reason
// @Produce json
// @Param id path string true "Reason ID"
// @Success 200 {object} response.Data[dto.ReasonResponse] "Reason details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reasons/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReasonByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReasonByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reason, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get reason by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reason)
}

// UpdateReason updates a block reason.
// @Summary Update a block reason
// @Description Retire a reason by setting active to false. Existing blocks keep it.
// @Tags Reason
// @Accept json
// @Produce json
// @Param id path string true "Reason ID"
// @Param request body dto.UpdateReasonRequest true "Update Reason Request"
// @Success 200 {object} response.Message "Reason updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reasons/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReason(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReason")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateReasonRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update reason")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Reason updated successfully")
}

// DeleteReason deletes a block reason that no block refers to.
// @Summary Delete a block reason
// @Tags Reason
// @Produce json
// @Param id path string true "Reason ID"
// @Success 200 {object} response.Message "Reason deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reasons/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReason(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReason")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete reason")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reason deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Reason deleted successfully")
}
