package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	SlotTableName  = "slot_records"
	SlotEntityName = "slot_record"

	DayTableName  = "day_availability"
	DayEntityName = "day_availability"

	SyncLogTableName  = "sync_logs"
	SyncLogEntityName = "sync_log"
)

const (
	FieldServiceKey      = "service_key"
	FieldStaffID         = "staff_id"
	FieldSlotDate        = "slot_date"
	FieldSlots           = "slots"
	FieldSyncStatus      = "sync_status"
	FieldErrorDetail     = "error_detail"
	FieldSyncedAt        = "synced_at"
	FieldHasAvailability = "has_availability"

	FieldID              = "id"
	FieldStatus          = "status"
	FieldDaysChecked     = "days_checked"
	FieldAPICalls        = "api_calls"
	FieldSlotsImported   = "slots_imported"
	FieldAPIErrors       = "api_errors"
	FieldRateLimitErrors = "rate_limit_errors"
	FieldErrorMessage    = "error_message"
	FieldStartedAt       = "started_at"
	FieldFinishedAt      = "finished_at"
)

const (
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)

const (
	SyncRunStatusRunning   = "running"
	SyncRunStatusCompleted = "completed"
	SyncRunStatusFailed    = "failed"
)

// SlotTimes is an ordered set of "HH:MM" strings stored as jsonb.
type SlotTimes []string

func (s SlotTimes) Value() (driver.Value, error) {
	if s == nil {
		s = SlotTimes{}
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode slot times: %w", err)
	}

	return encoded, nil
}

func (s *SlotTimes) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*s = SlotTimes{}

		return nil
	case []byte:
		return json.Unmarshal(value, s)
	case string:
		return json.Unmarshal([]byte(value), s)
	default:
		return fmt.Errorf("unsupported slot times source type %T", src)
	}
}

// SlotRecord is the cached provider answer for one (service, staff, date)
// tuple. Only the Synchronizer and the Slot Verifier write these rows. A
// failed fetch is stored explicitly with an empty slot set, never skipped.
type SlotRecord struct {
	ServiceKey  string    `db:"service_key"`
	StaffID     string    `db:"staff_id"`
	SlotDate    time.Time `db:"slot_date"`
	Slots       SlotTimes `db:"slots"`
	SyncStatus  string    `db:"sync_status"`
	ErrorDetail string    `db:"error_detail"`
	SyncedAt    time.Time `db:"synced_at"`
}

// DayAvailability is the aggregated has-any-slot flag per (service, date).
// Strictly derived from SlotRecord rows, never edited directly.
type DayAvailability struct {
	ServiceKey      string    `db:"service_key"`
	SlotDate        time.Time `db:"slot_date"`
	HasAvailability bool      `db:"has_availability"`
	SyncedAt        time.Time `db:"synced_at"`
}

// SyncLog records one synchronizer run for one service. Observability only;
// the booking path never reads it.
type SyncLog struct {
	ID              string     `db:"id"`
	ServiceKey      string     `db:"service_key"`
	Status          string     `db:"status"`
	DaysChecked     int        `db:"days_checked"`
	APICalls        int        `db:"api_calls"`
	SlotsImported   int        `db:"slots_imported"`
	APIErrors       int        `db:"api_errors"`
	RateLimitErrors int        `db:"rate_limit_errors"`
	ErrorMessage    string     `db:"error_message"`
	StartedAt       time.Time  `db:"started_at"`
	FinishedAt      *time.Time `db:"finished_at"`
}
