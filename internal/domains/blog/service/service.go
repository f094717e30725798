package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/otel"
	"atithi/infras/s3"
	"atithi/internal/domains/blog/model"
	"atithi/internal/domains/blog/model/dto"
	"atithi/internal/domains/blog/repository"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
	"atithi/shared/timezone"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const slugSuffixLength = 8

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

type Blog interface {
	Create(ctx context.Context, req dto.CreateBlogPostRequest) (dto.BlogPostResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlogPostsResponse, error)
	Get(ctx context.Context, id string) (dto.BlogPostResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.BlogPostResponse, error)
	Update(ctx context.Context, req dto.UpdateBlogPostRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo repository.Blog
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(repo repository.Blog, cfg *config.Config, otel otel.Otel, s3 s3.S3) Blog {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlogPostRequest) (res dto.BlogPostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return res, err
	}

	post := req.ToModel(user, slug)

	if err = s.repo.Insert(ctx, post); err != nil {
		log.Error().Err(err).Msg("failed to create blog post")

		return res, fmt.Errorf("failed to create blog post: %w", err)
	}

	res.FromModel(post)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlogPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count blog posts")

		return res, fmt.Errorf("failed to count blog posts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog posts")

		return res, fmt.Errorf("failed to get blog posts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlogPostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post")

		return res, fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return res, failure.NotFound("blog post not found") // nolint:wrapcheck
	}

	res.FromModel(post)

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.BlogPostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	post, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post by slug")

		return res, fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return res, failure.NotFound("blog post not found") // nolint:wrapcheck
	}

	res.FromModel(post)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBlogPostRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	post, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post")

		return fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return failure.NotFound("blog post not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	normalizeUpdateFields(updatedFields, post)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update blog post")

		return fmt.Errorf("failed to update blog post: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	post, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post for deletion")

		return fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return failure.NotFound("blog post not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete blog post")

		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	if post.CoverImage != constant.Empty {
		go s.deleteCoverImage(context.WithoutCancel(ctx), post.CoverImage)
	}

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := s.cfg.External.S3.BucketName

	filename := uuid.NewString()
	if parts := strings.Split(req.Image.Filename, "."); len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromModel(url, filename)

	return res, nil
}

// uniqueSlug derives a URL slug from the title and disambiguates it with a
// short random suffix when the plain form is already taken.
func (s *serviceImpl) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := Slugify(title)

	exists, err := s.repo.Exist(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check slug uniqueness")

		return constant.Empty, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}

	if exists {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLength]
		slug = slug + "-" + suffix
	}

	return slug, nil
}

// Slugify lowercases the title and collapses every run of non-alphanumeric
// characters into a single dash.
func Slugify(title string) string {
	slug := slugInvalidChars.ReplaceAllString(strings.ToLower(title), "-")

	return strings.Trim(slug, "-")
}

func (s *serviceImpl) deleteCoverImage(ctx context.Context, imageURL string) {
	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, imageURL)
	if objectName == constant.Empty {
		log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

		return
	}

	if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")
	}
}

// normalizeUpdateFields rewraps values the driver cannot bind directly and
// keeps the derived columns consistent with the new content.
func normalizeUpdateFields(fields map[string]any, current model.BlogPost) {
	if raw, ok := fields["content_blocks"]; ok {
		if reqs, ok := raw.([]dto.ContentBlockRequest); ok {
			blocks := make(model.ContentBlocks, len(reqs))
			for i, req := range reqs {
				blocks[i] = model.ContentBlock(req)
			}

			fields["content_blocks"] = blocks
			fields["read_time"] = dto.EstimateReadTime(blocks)
		}
	}

	if tags, ok := fields[model.FieldTags].([]string); ok {
		fields[model.FieldTags] = pq.StringArray(tags)
	}

	if status, ok := fields[model.FieldStatus].(string); ok {
		if status == constant.BlogStatusPublished && current.Status != constant.BlogStatusPublished {
			fields[model.FieldPublishedAt] = timezone.Now()
		}
	}
}
