package repository

import (
	"context"
	"fmt"
	"time"

	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/availability/model"
	"agenda/shared/constant"
	sharedDto "agenda/shared/dto"
	sharedRepository "agenda/shared/repository"
)

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

type AvailabilityRepository interface {
	UpsertSlotRecord(ctx context.Context, record model.SlotRecord) error
	ResolveSlotRecords(ctx context.Context, serviceKey string, date time.Time) ([]model.SlotRecord, error)
	UpsertDayAvailability(ctx context.Context, day model.DayAvailability) error
	ResolveDayRange(ctx context.Context, serviceKey string, from, to time.Time) ([]model.DayAvailability, error)
	DeleteDay(ctx context.Context, serviceKey string, date time.Time) error
	DeletePast(ctx context.Context, serviceKey string, olderThan time.Time) error
	CreateSyncLog(ctx context.Context, syncLog model.SyncLog) error
	UpdateSyncLog(ctx context.Context, syncLog model.SyncLog) error
}

type availabilityRepositoryImpl struct {
	slots   sharedRepository.Repository[model.SlotRecord]
	days    sharedRepository.Repository[model.DayAvailability]
	logs    sharedRepository.Repository[model.SyncLog]
	db      *postgres.Connection
	otelSdk otel.Otel
}

func NewAvailabilityRepository(db *postgres.Connection, otelSdk otel.Otel) AvailabilityRepository {
	return &availabilityRepositoryImpl{
		slots:   sharedRepository.NewRepository[model.SlotRecord](model.SlotEntityName, model.SlotTableName, model.FieldServiceKey, db, otelSdk),
		days:    sharedRepository.NewRepository[model.DayAvailability](model.DayEntityName, model.DayTableName, model.FieldServiceKey, db, otelSdk),
		logs:    sharedRepository.NewRepository[model.SyncLog](model.SyncLogEntityName, model.SyncLogTableName, model.FieldID, db, otelSdk),
		db:      db,
		otelSdk: otelSdk,
	}
}

// deleteSlotAndDayRows removes the matching rows from both availability
// tables in one transaction, so a derived day row never outlives or
// predates its slot rows.
func (repo *availabilityRepositoryImpl) deleteSlotAndDayRows(ctx context.Context, filter sharedDto.FilterGroup) error {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err = repo.slots.DeleteTx(ctx, tx, filter); err != nil {
		return err //nolint:wrapcheck
	}

	if err = repo.days.DeleteTx(ctx, tx, filter); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (repo *availabilityRepositoryImpl) UpsertSlotRecord(ctx context.Context, record model.SlotRecord) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpsertSlotRecord")
	defer scope.End()

	err := repo.slots.Upsert(ctx, record, model.FieldServiceKey, model.FieldStaffID, model.FieldSlotDate)
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}

func (repo *availabilityRepositoryImpl) ResolveSlotRecords(ctx context.Context, serviceKey string, date time.Time) ([]model.SlotRecord, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ResolveSlotRecords")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldServiceKey, Operator: sharedDto.FilterOperatorEq, Value: serviceKey},
			sharedDto.Filter{Field: model.FieldSlotDate, Operator: sharedDto.FilterOperatorEq, Value: date},
		},
	}

	records, err := repo.slots.GetAll(ctx, sharedDto.QueryParams{SortBy: model.FieldStaffID, SortDir: sharedDto.SortDirAsc}, filter)
	scope.TraceIfError(err)

	return records, err //nolint:wrapcheck
}

func (repo *availabilityRepositoryImpl) UpsertDayAvailability(ctx context.Context, day model.DayAvailability) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpsertDayAvailability")
	defer scope.End()

	err := repo.days.Upsert(ctx, day, model.FieldServiceKey, model.FieldSlotDate)
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}

func (repo *availabilityRepositoryImpl) ResolveDayRange(ctx context.Context, serviceKey string, from, to time.Time) ([]model.DayAvailability, error) {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ResolveDayRange")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldServiceKey, Operator: sharedDto.FilterOperatorEq, Value: serviceKey},
			sharedDto.Filter{ArgName: "from_date", Field: model.FieldSlotDate, Operator: sharedDto.FilterOperatorGreaterEq, Value: from},
			sharedDto.Filter{ArgName: "to_date", Field: model.FieldSlotDate, Operator: sharedDto.FilterOperatorLessEq, Value: to},
		},
	}

	days, err := repo.days.GetAll(ctx, sharedDto.QueryParams{SortBy: model.FieldSlotDate, SortDir: sharedDto.SortDirAsc}, filter)
	scope.TraceIfError(err)

	return days, err //nolint:wrapcheck
}

// DeleteDay drops the cached rows for one service day so the next read is
// forced back through a fresh provider fetch.
func (repo *availabilityRepositoryImpl) DeleteDay(ctx context.Context, serviceKey string, date time.Time) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeleteDay")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldServiceKey, Operator: sharedDto.FilterOperatorEq, Value: serviceKey},
			sharedDto.Filter{Field: model.FieldSlotDate, Operator: sharedDto.FilterOperatorEq, Value: date},
		},
	}

	err := repo.deleteSlotAndDayRows(ctx, filter)
	scope.TraceIfError(err)

	return err
}

func (repo *availabilityRepositoryImpl) DeletePast(ctx context.Context, serviceKey string, olderThan time.Time) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeletePast")
	defer scope.End()

	filter := sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldServiceKey, Operator: sharedDto.FilterOperatorEq, Value: serviceKey},
			sharedDto.Filter{Field: model.FieldSlotDate, Operator: sharedDto.FilterOperatorLessEq, Value: olderThan},
		},
	}

	err := repo.deleteSlotAndDayRows(ctx, filter)
	scope.TraceIfError(err)

	return err
}

func (repo *availabilityRepositoryImpl) CreateSyncLog(ctx context.Context, syncLog model.SyncLog) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".CreateSyncLog")
	defer scope.End()

	err := repo.logs.Insert(ctx, syncLog)
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}

func (repo *availabilityRepositoryImpl) UpdateSyncLog(ctx context.Context, syncLog model.SyncLog) error {
	ctx, scope := repo.otelSdk.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateSyncLog")
	defer scope.End()

	mod := map[string]any{
		model.FieldStatus:          syncLog.Status,
		model.FieldDaysChecked:     syncLog.DaysChecked,
		model.FieldAPICalls:        syncLog.APICalls,
		model.FieldSlotsImported:   syncLog.SlotsImported,
		model.FieldAPIErrors:       syncLog.APIErrors,
		model.FieldRateLimitErrors: syncLog.RateLimitErrors,
		model.FieldErrorMessage:    syncLog.ErrorMessage,
		model.FieldFinishedAt:      syncLog.FinishedAt,
	}

	err := repo.logs.Update(ctx, mod, sharedDto.FilterGroup{
		Operator: sharedDto.FilterGroupOperatorAnd,
		Filters: []any{
			sharedDto.Filter{Field: model.FieldID, Operator: sharedDto.FilterOperatorEq, Value: syncLog.ID},
		},
	})
	scope.TraceIfError(err)

	return err //nolint:wrapcheck
}
