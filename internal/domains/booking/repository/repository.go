package repository

import (
	"context"
	"fmt"
	"time"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/booking/model"
	"agenda/shared"
	"agenda/shared/constant"
	sharedDto "agenda/shared/dto"
	sharedRepository "agenda/shared/repository"
	"agenda/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

type Booking interface {
	Insert(ctx context.Context, intent model.BookingIntent) error
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	ResolveByID(ctx context.Context, id string) (model.BookingIntent, error)
	ResolveBySessionID(ctx context.Context, sessionID string) (model.BookingIntent, error)
	Transition(ctx context.Context, id, fromStatus, toStatus string, mod map[string]any) (bool, error)
	ExpirePending(ctx context.Context, olderThan time.Time) (int, error)
}

type bookingRepositoryImpl struct {
	intents sharedRepository.Repository[model.BookingIntent]
	db      *postgres.Connection
	otelSdk otel.Otel
}

func New(db *postgres.Connection, otelSdk otel.Otel) Booking {
	return &bookingRepositoryImpl{
		intents: sharedRepository.NewRepository[model.BookingIntent](model.EntityName, model.TableName, model.FieldID, db, otelSdk),
		db:      db,
		otelSdk: otelSdk,
	}
}

func (repo *bookingRepositoryImpl) Insert(ctx context.Context, intent model.BookingIntent) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Insert")
	defer scope.End()

	err := repo.intents.Insert(ctx, intent)
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}

// SessionExists reports whether any intent has already been stored for the
// given payment session.
func (repo *bookingRepositoryImpl) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SessionExists")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldPaymentSessionID, Operator: sharedDto.FilterOperatorEq, Value: sessionID},
		},
	}

	exists, err := repo.intents.Exist(ctx, filter)
	scope.TraceIfError(err)

	return exists, err //nolint:wrapcheck
}

func (repo *bookingRepositoryImpl) ResolveByID(ctx context.Context, id string) (model.BookingIntent, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ResolveByID")
	defer scope.End()

	intent, err := repo.intents.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	scope.TraceIfError(err)

	return intent, err //nolint:wrapcheck
}

func (repo *bookingRepositoryImpl) ResolveBySessionID(ctx context.Context, sessionID string) (model.BookingIntent, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ResolveBySessionID")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldPaymentSessionID, Operator: sharedDto.FilterOperatorEq, Value: sessionID},
		},
	}

	intent, err := repo.intents.Get(ctx, filter)
	scope.TraceIfError(err)

	return intent, err //nolint:wrapcheck
}

// Transition moves an intent between statuses only when it is still in
// fromStatus, and reports whether a row actually moved. Extra column
// updates ride along in mod.
func (repo *bookingRepositoryImpl) Transition(ctx context.Context, id, fromStatus, toStatus string, mod map[string]any) (bool, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Transition")
	defer scope.End()

	if mod == nil {
		mod = map[string]any{}
	}

	mod[model.FieldStatus] = toStatus
	mod[model.FieldModifiedAt] = timezone.Now()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldID, Operator: sharedDto.FilterOperatorEq, Value: id},
			sharedDto.Filter{ArgName: "from_status", Field: model.FieldStatus, Operator: sharedDto.FilterOperatorEq, Value: fromStatus},
		},
	}

	moved, err := repo.intents.UpdateWhere(ctx, mod, filter)
	scope.TraceIfError(err)

	return moved, err //nolint:wrapcheck
}

// ExpirePending marks stale pending intents expired. Intents that already
// moved to paid or confirmed are untouched.
func (repo *bookingRepositoryImpl) ExpirePending(ctx context.Context, olderThan time.Time) (int, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ExpirePending")
	defer scope.End()

	query := "UPDATE " + model.TableName + " SET status = :to_status, modified_at = :modified_at WHERE status = :from_status AND created_at <= :older_than"

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"to_status":   model.StatusExpired,
		"from_status": model.StatusPending,
		"modified_at": timezone.Now(),
		"older_than":  olderThan,
	})
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to expire pending intents: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return int(affected), nil
}
