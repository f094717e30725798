package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"atithi/config"
	"atithi/infras/otel"
	"atithi/infras/s3"
	"atithi/internal/domains/accommodation/model"
	"atithi/internal/domains/accommodation/model/dto"
	"atithi/internal/domains/accommodation/repository"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/failure"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Accommodation interface {
	Create(ctx context.Context, req dto.CreateAccommodationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccommodationsResponse, error)
	Get(ctx context.Context, id string) (dto.AccommodationResponse, error)
	Update(ctx context.Context, req dto.UpdateAccommodationRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo repository.Accommodation
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(repo repository.Accommodation, cfg *config.Config, otel otel.Otel, s3 s3.S3) Accommodation {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		s3:   s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccommodationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create accommodation")

		return fmt.Errorf("failed to create accommodation: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccommodationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accommodations")

		return res, fmt.Errorf("failed to count accommodations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodations")

		return res, fmt.Errorf("failed to get accommodations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AccommodationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	accommodation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodation")

		return res, fmt.Errorf("failed to get accommodation: %w", err)
	}

	if accommodation.ID == constant.Empty {
		return res, failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	res.FromModel(accommodation)

	return res, nil
}

// Update applies a partial update under the repository's row lock.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccommodationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := shared.TransformFields(req, user)
	normalizeArrayFields(updatedFields)

	if err = s.repo.UpdateLocked(ctx, id, updatedFields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("accommodation not found") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update accommodation")

		return fmt.Errorf("failed to update accommodation: %w", err)
	}

	return nil
}

// Delete removes the accommodation and its bookings, then cleans up the
// stored images without holding up the response.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	accommodation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accommodation for deletion")

		return fmt.Errorf("failed to get accommodation: %w", err)
	}

	if accommodation.ID == constant.Empty {
		return failure.NotFound("accommodation not found") // nolint:wrapcheck
	}

	if err = s.repo.DeleteWithBookings(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete accommodation")

		return fmt.Errorf("failed to delete accommodation: %w", err)
	}

	images := append([]string{}, accommodation.Images...)
	images = append(images, accommodation.PackageImages...)

	if len(images) > 0 {
		go s.deleteImages(context.WithoutCancel(ctx), images)
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

func (s *serviceImpl) deleteImages(ctx context.Context, imageURLs []string) {
	bucketName := s.cfg.External.S3.BucketName

	for _, imageURL := range imageURLs {
		objectName := s.s3.GetObjectNameFromURL(bucketName, imageURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")
		}
	}
}

// normalizeArrayFields rewraps string slices so the driver can bind them
// as postgres arrays.
func normalizeArrayFields(fields map[string]any) {
	for key, value := range fields {
		if slice, ok := value.([]string); ok {
			fields[key] = pq.StringArray(slice)
		}
	}
}
