package dto_test

import (
	"testing"
	"time"

	"agenda/internal/domains/availability/model"
	"agenda/internal/domains/availability/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestNewSyncResponse(t *testing.T) {
	tests := []struct {
		name     string
		results  []dto.ServiceSyncResult
		expected bool
	}{
		{
			name: "all services succeeded",
			results: []dto.ServiceSyncResult{
				{Service: "consult_onsite", Success: true, TotalSlotsImported: 12},
				{Service: "prp_onsite", Success: true, TotalSlotsImported: 4},
			},
			expected: true,
		},
		{
			name: "one failed service fails the run",
			results: []dto.ServiceSyncResult{
				{Service: "consult_onsite", Success: true},
				{Service: "prp_onsite", Success: false, Error: "provider api error"},
			},
			expected: false,
		},
		{
			name:     "no services",
			results:  nil,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := dto.NewSyncResponse(tt.results)

			assert.Equal(t, tt.expected, response.Success)
			assert.Len(t, response.Results, len(tt.results))
		})
	}
}

func TestNewDayFlag(t *testing.T) {
	day := model.DayAvailability{
		ServiceKey:      "consult_onsite",
		SlotDate:        time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		HasAvailability: true,
	}

	flag := dto.NewDayFlag(day)

	assert.Equal(t, "2026-09-14", flag.Date)
	assert.True(t, flag.HasAvailability)
}
