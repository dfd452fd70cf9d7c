package dto

import (
	"fmt"
	"time"

	"agenda/internal/domains/booking/model"
	catalogModel "agenda/internal/domains/catalog/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ServiceType       string `json:"serviceType" validate:"required"`
	Location          string `json:"location" validate:"required"`
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	Time              string `json:"time" validate:"required,slottime"`
	StaffID           string `json:"staffId" validate:"omitempty"`
	CustomerFirstName string `json:"customerFirstName" validate:"required"`
	CustomerLastName  string `json:"customerLastName" validate:"required"`
	CustomerEmail     string `json:"customerEmail" validate:"required,email"`
	CustomerPhone     string `json:"customerPhone" validate:"required"`
	Notes             string `json:"notes" validate:"omitempty"`
	PaymentSessionID  string `json:"paymentSessionId" validate:"required"`
}

// ToModel builds a pending intent from the request. The staff member falls
// back to the service's preferred staff, then to the first configured one.
func (r CreateBookingRequest) ToModel(svc catalogModel.ServiceConfig) (model.BookingIntent, error) {
	date, err := timezone.Parse(constant.DayFormat, r.Date)
	if err != nil {
		return model.BookingIntent{}, fmt.Errorf("invalid date: %w", err)
	}

	startAt, err := timezone.Parse(constant.DayFormat+" "+constant.SlotTimeFormat, r.Date+" "+r.Time)
	if err != nil {
		return model.BookingIntent{}, fmt.Errorf("invalid time: %w", err)
	}

	staffID := r.StaffID
	if staffID == "" {
		staffID = svc.PreferredStaffID
	}

	if staffID == "" && len(svc.StaffIDs) > 0 {
		staffID = svc.StaffIDs[0]
	}

	now := timezone.Now()

	return model.BookingIntent{
		ID:                "bi_" + uuid.NewString(),
		ServiceType:       string(svc.Type),
		Location:          string(svc.Location),
		ProviderServiceID: svc.ProviderServiceID,
		StaffID:           staffID,
		SlotDate:          date,
		StartAt:           startAt,
		EndAt:             startAt.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Timezone:          timezone.GetLocation().String(),
		CustomerFirstName: r.CustomerFirstName,
		CustomerLastName:  r.CustomerLastName,
		CustomerEmail:     r.CustomerEmail,
		CustomerPhone:     r.CustomerPhone,
		Notes:             r.Notes,
		PaymentSessionID:  r.PaymentSessionID,
		Status:            model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  r.CustomerEmail,
			ModifiedBy: r.CustomerEmail,
		},
	}, nil
}

type ProcessBookingRequest struct {
	PaymentSessionID string `json:"paymentSessionId" validate:"required"`
}

type BookingResponse struct {
	ID                string `json:"id"`
	ServiceType       string `json:"serviceType"`
	Location          string `json:"location"`
	StaffID           string `json:"staffId"`
	StaffName         string `json:"staffName"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Status            string `json:"status"`
	PaymentSessionID  string `json:"paymentSessionId"`
	ProviderBookingID string `json:"providerBookingId,omitempty"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
	gDto.Metadata
}

func NewBookingResponse(intent model.BookingIntent, staffName string) BookingResponse {
	response := BookingResponse{
		ID:                intent.ID,
		ServiceType:       intent.ServiceType,
		Location:          intent.Location,
		StaffID:           intent.StaffID,
		StaffName:         staffName,
		Date:              intent.SlotDate.Format(constant.DayFormat),
		Time:              timezone.Format(intent.StartAt, constant.SlotTimeFormat),
		Status:            intent.Status,
		PaymentSessionID:  intent.PaymentSessionID,
		ProviderBookingID: intent.ProviderBookingID,
		ErrorMessage:      intent.ErrorMessage,
	}
	response.Metadata.FromModel(intent.Metadata)

	return response
}

type ProcessBookingResponse struct {
	Success bool            `json:"success"`
	Booking BookingResponse `json:"booking"`
}
