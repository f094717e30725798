package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"atithi/infras/otel"
	"atithi/infras/postgres"
	"atithi/internal/domains/accommodation/model"
	bookingModel "atithi/internal/domains/booking/model"
	"atithi/shared"
	"atithi/shared/constant"
	gDto "atithi/shared/dto"
	"atithi/shared/logger"
	gRepo "atithi/shared/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by the locking update when no row matches.
	ErrNotFound = errors.New("accommodation not found")
)

type Accommodation interface {
	Insert(ctx context.Context, model model.Accommodation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Accommodation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Accommodation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateLocked(ctx context.Context, id string, fields map[string]any) error
	DeleteWithBookings(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Accommodation]
	bookings gRepo.Repository[bookingModel.Booking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Accommodation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Accommodation](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings:   gRepo.NewRepository[bookingModel.Booking](bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateLocked applies a partial update under a row lock so concurrent
// admin edits serialize instead of clobbering each other.
func (repo *repositoryImpl) UpdateLocked(ctx context.Context, id string, fields map[string]any) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".accommodation.UpdateLocked")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	lockQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", model.FieldID, model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	var lockedID string

	err = tx.GetContext(ctx, &lockedID, lockQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound

		return err
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock row (%s): %w", model.EntityName, err)
	}

	if err = repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// DeleteWithBookings removes an accommodation and all of its bookings in
// one transaction so no booking row is ever left dangling.
func (repo *repositoryImpl) DeleteWithBookings(ctx context.Context, id string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".accommodation.DeleteWithBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	bookingFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldAccommodationID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    bookingModel.TableName,
			},
		},
	}

	if err = repo.bookings.DeleteTx(ctx, tx, bookingFilter); err != nil {
		return err
	}

	if err = repo.Repository.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
