package booking

import (
	"atithi/infras/otel"
	"atithi/internal/domains/booking/model"
	"atithi/internal/domains/booking/model/dto"
	"atithi/internal/domains/booking/service"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
	"atithi/shared/validator"
	"atithi/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	paramSearch        = "search"
	paramPaymentStatus = "payment_status"
	paramCheckInFrom   = "check_in_from"
	paramCheckInTo     = "check_in_to"
	paramAccommodation = "accommodation_id"
	paramDate          = "date"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/offline", handler.CreateOfflineBooking)
		routerGroup.Delete("/delete/{id}", handler.DeleteBooking)
		routerGroup.Post("/payments/payu", handler.InitiatePayment)
		routerGroup.Post("/success/verify/{txnid}", handler.VerifyPaymentSuccess)
		routerGroup.Post("/failed/verify/{txnid}", handler.VerifyPaymentFailure)
		routerGroup.Get("/details/{txnid}", handler.GetBookingDetails)
		routerGroup.Put("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Get("/room-occupancy", handler.GetRoomOccupancy)
	})
}

// CreateBooking handles the creation of a new guest booking.
// @Summary Create a new booking
// @Description Create a new booking in pending state and return its payment transaction token.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 200 {object} response.Data[dto.CreateBookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created with token " + res.TxnID)

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateOfflineBooking records a booking taken over the counter or phone.
// @Summary Create an offline booking
// @Description Record a staff-entered booking as already paid and send the confirmation mail.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateOfflineBookingRequest true "Create Offline Booking Request"
// @Success 200 {object} response.Data[dto.CreateBookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/offline [post]
// @Security BearerAuth
func (handler *Handler) CreateOfflineBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOfflineBooking")
	defer scope.End()

	req := dto.CreateOfflineBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateOffline(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create offline booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Offline booking created by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve bookings with free-text search, status and check-in range filters, paginated.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Free-text search over guest name, email, phone, txn id and id"
// @Param payment_status query string false "Filter by payment status (pending, success, failed, expired)"
// @Param check_in_from query string false "Check-in range start (YYYY-MM-DD)"
// @Param check_in_to query string false "Check-in range end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortBy == "" {
		queryParams.SortBy = constant.DefaultValueSortBy
		queryParams.SortDir = constant.DefaultValueSortDir
	}

	filterGroup := listFilter(r)

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// listFilter builds the booking list filter from the request query. The two
// check-in range bounds target the same column, so they carry distinct arg
// names to keep both bound values in the named query.
func listFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if search := r.URL.Query().Get(paramSearch); search != "" {
		searchGroup := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters:  []any{},
		}

		for _, field := range []string{model.FieldGuestName, model.FieldGuestEmail, model.FieldGuestPhone, model.FieldTxnID, model.FieldID} {
			searchGroup.Filters = append(searchGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    search,
				Table:    model.TableName,
			})
		}

		filterGroup.Filters = append(filterGroup.Filters, searchGroup)
	}

	if status := r.URL.Query().Get(paramPaymentStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if from := r.URL.Query().Get(paramCheckInFrom); from != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  paramCheckInFrom,
			Field:    model.FieldCheckIn,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to := r.URL.Query().Get(paramCheckInTo); to != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  paramCheckInTo,
			Field:    model.FieldCheckIn,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetBookingDetails retrieves a booking by its payment transaction token.
// @Summary Get booking details by transaction token
// @Description Retrieve a booking joined with its accommodation and owner.
// @Tags Booking
// @Accept json
// @Produce json
// @Param txnid path string true "Payment transaction token"
// @Success 200 {object} response.Data[dto.BookingDetailResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/details/{txnid} [get]
func (handler *Handler) GetBookingDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingDetails")
	defer scope.End()

	txnID := chi.URLParam(r, constant.RequestParamTxnID)

	detail, err := handler.service.GetDetailByTxn(ctx, txnID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking details")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking details retrieved successfully")

	response.WithJSON(w, http.StatusOK, detail)
}

// UpdateBookingStatus manually overrides a booking's payment status.
// @Summary Update booking payment status
// @Description Manually override the payment status of a booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Description Delete a booking using its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/delete/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// InitiatePayment signs a gateway payment payload for a pending booking.
// @Summary Initiate a gateway payment
// @Description Build the signed form payload the frontend posts to the payment gateway.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 200 {object} response.Data[payu.PaymentRequest] "Signed payment payload"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/payments/payu [post]
func (handler *Handler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	req := dto.InitiatePaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.InitiatePayment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initiate payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment initiated for transaction " + res.TxnID)

	response.WithJSON(w, http.StatusOK, res)
}

// VerifyPaymentSuccess settles a gateway success callback.
// @Summary Verify a gateway success callback
// @Description Verify the callback digest, mark the booking paid and redirect to the frontend result page.
// @Tags Booking
// @Accept x-www-form-urlencoded
// @Param txnid path string true "Payment transaction token"
// @Success 302 "Redirect to payment result page"
// @Router /v1/bookings/success/verify/{txnid} [post]
func (handler *Handler) VerifyPaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPaymentSuccess")
	defer scope.End()

	txnID := chi.URLParam(r, constant.RequestParamTxnID)

	if err := r.ParseForm(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse payment callback form")
	}

	req := dto.PaymentCallbackRequest{
		Status:      r.PostFormValue("status"),
		TxnID:       r.PostFormValue("txnid"),
		Amount:      r.PostFormValue("amount"),
		ProductInfo: r.PostFormValue("productinfo"),
		FirstName:   r.PostFormValue("firstname"),
		Email:       r.PostFormValue("email"),
		Hash:        r.PostFormValue("hash"),
	}

	redirectURL := handler.service.ReconcileSuccess(ctx, txnID, req)

	response.WithRedirect(w, r, redirectURL)
}

// VerifyPaymentFailure acknowledges a gateway failure callback.
// @Summary Verify a gateway failure callback
// @Description Redirect to the frontend failure page. The booking is not modified.
// @Tags Booking
// @Accept x-www-form-urlencoded
// @Param txnid path string true "Payment transaction token"
// @Success 302 "Redirect to payment failure page"
// @Router /v1/bookings/failed/verify/{txnid} [post]
func (handler *Handler) VerifyPaymentFailure(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPaymentFailure")
	defer scope.End()

	txnID := chi.URLParam(r, constant.RequestParamTxnID)

	redirectURL := handler.service.ReconcileFailure(ctx, txnID)

	response.WithRedirect(w, r, redirectURL)
}

// GetRoomOccupancy reports how many rooms are taken on a date.
// @Summary Get room occupancy
// @Description Sum the rooms of paid bookings checking in on the given date for an accommodation.
// @Tags Booking
// @Accept json
// @Produce json
// @Param accommodation_id query string true "Accommodation ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.OccupancyResponse] "Occupancy"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/room-occupancy [get]
func (handler *Handler) GetRoomOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomOccupancy")
	defer scope.End()

	accommodationID := r.URL.Query().Get(paramAccommodation)
	date := r.URL.Query().Get(paramDate)

	if accommodationID == "" || date == "" {
		err := failure.BadRequestFromString("accommodation_id and date are required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	occupancy, err := handler.service.Occupancy(ctx, accommodationID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room occupancy")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room occupancy retrieved successfully")

	response.WithJSON(w, http.StatusOK, occupancy)
}
