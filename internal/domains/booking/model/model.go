package model

import (
	"time"

	"agenda/shared/model"
)

const (
	TableName  = "booking_intents"
	EntityName = "booking_intent"

	FieldID                   = "id"
	FieldServiceType          = "service_type"
	FieldLocation             = "location"
	FieldProviderServiceID    = "provider_service_id"
	FieldStaffID              = "staff_id"
	FieldSlotDate             = "slot_date"
	FieldStartAt              = "start_at"
	FieldEndAt                = "end_at"
	FieldTimezone             = "timezone"
	FieldCustomerFirstName    = "customer_first_name"
	FieldCustomerLastName     = "customer_last_name"
	FieldCustomerEmail        = "customer_email"
	FieldCustomerPhone        = "customer_phone"
	FieldNotes                = "notes"
	FieldPaymentSessionID     = "payment_session_id"
	FieldPaymentTransactionID = "payment_transaction_id"
	FieldProviderBookingID    = "provider_booking_id"
	FieldStatus               = "status"
	FieldErrorMessage         = "error_message"
	FieldModifiedAt           = "modified_at"
)

// Intent statuses. Transitions only move forward: pending to paid to
// confirmed, or pending to expired. There is no path out of confirmed or
// expired.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusConfirmed = "confirmed"
	StatusExpired   = "expired"
)

type BookingIntent struct {
	ID                   string    `db:"id"`
	ServiceType          string    `db:"service_type"`
	Location             string    `db:"location"`
	ProviderServiceID    string    `db:"provider_service_id"`
	StaffID              string    `db:"staff_id"`
	SlotDate             time.Time `db:"slot_date"`
	StartAt              time.Time `db:"start_at"`
	EndAt                time.Time `db:"end_at"`
	Timezone             string    `db:"timezone"`
	CustomerFirstName    string    `db:"customer_first_name"`
	CustomerLastName     string    `db:"customer_last_name"`
	CustomerEmail        string    `db:"customer_email"`
	CustomerPhone        string    `db:"customer_phone"`
	Notes                string    `db:"notes"`
	PaymentSessionID     string    `db:"payment_session_id"`
	PaymentTransactionID string    `db:"payment_transaction_id"`
	ProviderBookingID    string    `db:"provider_booking_id"`
	Status               string    `db:"status"`
	ErrorMessage         string    `db:"error_message"`
	model.Metadata
}

func (b BookingIntent) ServiceKey() string {
	return b.ServiceType + "_" + b.Location
}
