package blog

import (
	"atithi/infras/otel"
	"atithi/internal/domains/blog/model"
	"atithi/internal/domains/blog/model/dto"
	"atithi/internal/domains/blog/service"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/validator"
	"atithi/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramStatus = "status"
	paramSearch = "search"
	paramSlug   = "slug"
)

type Handler struct {
	service service.Blog
	otel    otel.Otel
}

func New(service service.Blog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blogs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlogPost)
		routerGroup.Get("/", handler.GetBlogPosts)
		routerGroup.Get("/{id}", handler.GetBlogPostByID)
		routerGroup.Get("/slug/{slug}", handler.GetBlogPostBySlug)
		routerGroup.Patch("/{id}", handler.UpdateBlogPost)
		routerGroup.Delete("/{id}", handler.DeleteBlogPost)
		routerGroup.Post("/upload", handler.UploadImage)
	})
}

// CreateBlogPost handles the creation of a new blog post.
// @Summary Create a new blog post
// @Description Create a new blog post with structured content blocks.
// @Tags Blog
// @Accept json
// @Produce json
// @Param request body dto.CreateBlogPostRequest true "Create Blog Post Request"
// @Success 201 {object} dto.BlogPostResponse "Created blog post"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs [post]
// @Security BearerAuth
func (handler *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlogPost")
	defer scope.End()

	req := dto.CreateBlogPostRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blog post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Blog post created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBlogPosts retrieves blog posts with optional filters.
// @Summary Get all blog posts
// @Description Retrieve blog posts with optional filtering and pagination.
// @Tags Blog
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (draft or published)"
// @Param search query string false "Search by title"
// @Success 200 {object} dto.GetBlogPostsResponse "List of blog posts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs [get]
func (handler *Handler) GetBlogPosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogPosts")
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

	if status := r.URL.Query().Get(paramStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if search := r.URL.Query().Get(paramSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	posts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog posts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blog posts retrieved successfully")

	response.WithJSON(w, http.StatusOK, posts)
}

// GetBlogPostByID retrieves a blog post by its ID.
// @Summary Get a blog post by ID
// @Description Retrieve a blog post by its unique identifier.
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Blog Post ID"
// @Success 200 {object} dto.BlogPostResponse "Blog post details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [get]
func (handler *Handler) GetBlogPostByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogPostByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	post, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog post by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blog post retrieved successfully")

	response.WithJSON(w, http.StatusOK, post)
}

// GetBlogPostBySlug retrieves a blog post by its slug.
// @Summary Get a blog post by slug
// @Description Retrieve a blog post by its URL slug.
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Blog Post Slug"
// @Success 200 {object} dto.BlogPostResponse "Blog post details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/slug/{slug} [get]
func (handler *Handler) GetBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlogPostBySlug")
	defer scope.End()

	slug := chi.URLParam(r, paramSlug)

	post, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blog post by slug")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blog post retrieved successfully")

	response.WithJSON(w, http.StatusOK, post)
}

// UpdateBlogPost updates an existing blog post by its ID.
// @Summary Update a blog post by ID
// @Description Apply a partial update to an existing blog post.
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Blog Post ID"
// @Param request body dto.UpdateBlogPostRequest true "Update Blog Post Request"
// @Success 200 {object} response.Message "Blog post updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlogPost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBlogPostRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update blog post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Blog post updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Blog post updated successfully")
}

// DeleteBlogPost deletes a blog post by its ID.
// @Summary Delete a blog post by ID
// @Description Delete a blog post using its unique identifier.
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Blog Post ID"
// @Success 200 {object} response.Message "Blog post deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlogPost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blog post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Blog post deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Blog post deleted successfully")
}

// UploadImage handles cover image upload to S3.
// @Summary Upload an image to S3
// @Description Upload an image file to S3 and return the URL.
// @Tags Blog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.UploadImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blogs/upload [post]
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
