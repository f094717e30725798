package accommodation

import (
	"atithi/infras/otel"
	"atithi/internal/domains/accommodation/model"
	"atithi/internal/domains/accommodation/model/dto"
	"atithi/internal/domains/accommodation/service"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/validator"
	"atithi/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramType    = "type"
	paramCity    = "city"
	paramOwnerID = "owner_id"
	paramActive  = "active"
	paramSearch  = "search"
)

type Handler struct {
	service service.Accommodation
	otel    otel.Otel
}

func New(service service.Accommodation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accommodations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccommodation)
		routerGroup.Get("/", handler.GetAccommodations)
		routerGroup.Get("/{id}", handler.GetAccommodationByID)
		routerGroup.Patch("/{id}", handler.UpdateAccommodation)
		routerGroup.Delete("/{id}", handler.DeleteAccommodation)
		routerGroup.Post("/upload", handler.UploadImage)
	})
}

// CreateAccommodation handles the creation of a new accommodation.
// @Summary Create a new accommodation
// @Description Create a new resort or villa with the provided details.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param request body dto.CreateAccommodationRequest true "Create Accommodation Request"
// @Success 201 {object} response.Message "Accommodation created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations [post]
// @Security BearerAuth
func (handler *Handler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccommodation")
	defer scope.End()

	req := dto.CreateAccommodationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create accommodation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Accommodation created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Accommodation created successfully")
}

// GetAccommodations retrieves accommodations with optional filters.
// @Summary Get all accommodations
// @Description Retrieve accommodations with optional filtering and pagination.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param type query string false "Filter by type (resort or villa)"
// @Param city query string false "Filter by city"
// @Param owner_id query string false "Filter by owner"
// @Param active query string false "Filter by active flag"
// @Param search query string false "Search by name"
// @Success 200 {object} dto.GetAccommodationsResponse "List of accommodations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations [get]
func (handler *Handler) GetAccommodations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccommodations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = constant.DefaultValueSortBy
		queryParams.SortDir = constant.DefaultValueSortDir
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if accommodationType := r.URL.Query().Get(paramType); accommodationType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    accommodationType,
			Table:    model.TableName,
		})
	}

	if city := r.URL.Query().Get(paramCity); city != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if ownerID := r.URL.Query().Get(paramOwnerID); ownerID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    ownerID,
			Table:    model.TableName,
		})
	}

	if active := r.URL.Query().Get(paramActive); active != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active == "true",
			Table:    model.TableName,
		})
	}

	if search := r.URL.Query().Get(paramSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	accommodations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accommodations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodations retrieved successfully")

	response.WithJSON(w, http.StatusOK, accommodations)
}

// GetAccommodationByID retrieves an accommodation by its ID.
// @Summary Get an accommodation by ID
// @Description Retrieve an accommodation by its unique identifier.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param id path string true "Accommodation ID"
// @Success 200 {object} dto.AccommodationResponse "Accommodation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [get]
func (handler *Handler) GetAccommodationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccommodationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	accommodation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accommodation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Accommodation retrieved successfully")

	response.WithJSON(w, http.StatusOK, accommodation)
}

// UpdateAccommodation updates an existing accommodation by its ID.
// @Summary Update an accommodation by ID
// @Description Apply a partial update to an existing accommodation.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param id path string true "Accommodation ID"
// @Param request body dto.UpdateAccommodationRequest true "Update Accommodation Request"
// @Success 200 {object} response.Message "Accommodation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccommodation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAccommodationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update accommodation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Accommodation updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Accommodation updated successfully")
}

// DeleteAccommodation deletes an accommodation and its bookings.
// @Summary Delete an accommodation by ID
// @Description Delete an accommodation along with all of its bookings.
// @Tags Accommodation
// @Accept json
// @Produce json
// @Param id path string true "Accommodation ID"
// @Success 200 {object} response.Message "Accommodation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccommodation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete accommodation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Accommodation deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Accommodation deleted successfully")
}

// UploadImage handles image upload to S3.
// @Summary Upload an image to S3
// @Description Upload an image file to S3 and return the URL.
// @Tags Accommodation
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.UploadImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accommodations/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate uploaded file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
