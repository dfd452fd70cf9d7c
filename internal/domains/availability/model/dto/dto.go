package dto

import (
	"agenda/internal/domains/availability/model"
	"agenda/shared/constant"
)

type VerifySlotRequest struct {
	ServiceType string `json:"serviceType" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,slottime"`
	StaffID     string `json:"staffId" validate:"required"`
}

type VerifySlotResponse struct {
	Success            bool   `json:"success"`
	SlotStillAvailable bool   `json:"slotStillAvailable"`
	RefreshedAt        string `json:"refreshedAt"`
}

type DayAvailabilityRequest struct {
	ServiceType string `json:"serviceType" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

type ServiceInfo struct {
	Type            string `json:"type"`
	Location        string `json:"location"`
	DurationMinutes int    `json:"durationMinutes"`
}

type DayAvailabilityResponse struct {
	Date           string      `json:"date"`
	AvailableSlots []string    `json:"available_slots"`
	Service        ServiceInfo `json:"service"`
}

type RangeAvailabilityRequest struct {
	ServiceType string `json:"serviceType" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

type DayFlag struct {
	Date            string `json:"date"`
	HasAvailability bool   `json:"hasAvailability"`
}

func NewDayFlag(day model.DayAvailability) DayFlag {
	return DayFlag{
		Date:            day.SlotDate.Format(constant.DayFormat),
		HasAvailability: day.HasAvailability,
	}
}

type RangeAvailabilityResponse struct {
	Days []DayFlag `json:"days"`
}

type ServiceSyncResult struct {
	Service              string `json:"service"`
	Success              bool   `json:"success"`
	TotalSlotsImported   int    `json:"totalSlotsImported"`
	APICallsMade         int    `json:"apiCallsMade"`
	APIErrorsCount       int    `json:"apiErrorsCount"`
	RateLimitErrorsCount int    `json:"rateLimitErrorsCount"`
	Error                string `json:"error,omitempty"`
}

type SyncResponse struct {
	Success bool                `json:"success"`
	Results []ServiceSyncResult `json:"results"`
}

func NewSyncResponse(results []ServiceSyncResult) SyncResponse {
	response := SyncResponse{
		Success: true,
		Results: results,
	}

	for _, result := range results {
		if !result.Success {
			response.Success = false
		}
	}

	return response
}
