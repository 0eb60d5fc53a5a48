package reservation

import (
	"courtbook/infras/otel"
	"courtbook/internal/domains/reservation/model"
	"courtbook/internal/domains/reservation/model/dto"
	"courtbook/internal/domains/reservation/service"
	"courtbook/internal/handlers/request"
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
	service service.Reservation
	clock   *timezone.Clock
	otel    otel.Otel
}

func New(service service.Reservation, clock *timezone.Clock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		clock:   clock,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.ModifyReservation)
		routerGroup.Delete("/{id}", handler.CancelReservation)
	})

	router.Get("/availability", handler.CheckAvailability)
}

// CreateReservation books a court for one hour.
// @Summary Create a reservation
// @Description Book a single court hour for the caller or, when booked_for is set, for another member.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Msg("failed to get member from context")
		response.WithError(w, err)

		return
	}

	req := dto.CreateReservationRequest{}
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

	reservation, err := handler.service.Create(ctx, req, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("member", actor.MemberID).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created by member " + actor.MemberID)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations lists reservations.
// @Summary Get all reservations
// @Description Retrieve reservations with optional filtering and pagination.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court query int false "Filter by court number"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (active, cancelled)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
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

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations lists the reservations the caller is a party to.
// @Summary Get my reservations
// @Description Retrieve reservations booked for or by the authenticated member.
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param court query int false "Filter by court number"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (active, cancelled)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of the member's reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Msg("failed to get member from context")
		response.WithError(w, err)

		return
	}

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

	reservations, err := handler.service.GetMine(ctx, queryParams, filterGroup, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get member reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved for member " + actor.MemberID)

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// ModifyReservation moves a reservation to another slot.
// @Summary Modify a reservation
// @Description Replace a reservation with one for a new slot. The original is cancelled and linked to its replacement.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.ModifyReservationRequest true "Modify Reservation Request"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Replacement reservation"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) ModifyReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ModifyReservation")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ModifyReservationRequest{}
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

	reservation, err := handler.service.Modify(ctx, id, req, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to modify reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + id + " replaced by " + reservation.ID)

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels a reservation.
// @Summary Cancel a reservation
// @Description Cancel a reservation. The body is optional and may carry a free-text reason.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.CancelReservationRequest false "Cancel Reservation Request"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.CancelReservationRequest{}
	if err := validator.ValidateOptional(r.Body, &req); err != nil {
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

	if err := handler.service.Cancel(ctx, id, req, now, actor); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled by member " + actor.MemberID)

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// CheckAvailability reports whether a slot could be booked right now.
// @Summary Check slot availability
// @Description Dry run of the booking rules for one slot without writing anything.
// @Tags Availability
// @Produce json
// @Param court query int true "Court number"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:00)"
// @Param booked_for query string false "Member the slot would be booked for"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability verdict"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	actor, err := request.Actor(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	query := r.URL.Query()
	court, _ := strconv.Atoi(query.Get(constant.RequestParamCourt))

	req := dto.AvailabilityRequest{
		SlotRequest: dto.SlotRequest{
			Court:     court,
			Date:      query.Get(constant.RequestParamDate),
			StartTime: query.Get(constant.RequestParamStartTime),
		},
		BookedFor: query.Get(constant.RequestParamBookedFor),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	now, err := request.Now(r, handler.clock, actor)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, req, now, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
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
			Field:    model.FieldCourtNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    number,
			Table:    model.TableName,
		})
	}

	if date := query.Get(constant.RequestParamDate); date != "" {
		if err := validator.ValidateParam(constant.RequestParamDate, date, "date"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	if status := query.Get(constant.RequestParamStatus); status != "" {
		if err := validator.ValidateParam(constant.RequestParamStatus, status, "oneof=active cancelled"); err != nil {
			return filterGroup, err
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}
