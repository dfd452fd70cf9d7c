package service

import "agenda/internal/domains/catalog/model"

// The registry data below mirrors the provider-side setup of the clinic.
// Service and staff ids are the provider's; prices are in euro cents.

func defaultServices() []model.ServiceConfig {
	return []model.ServiceConfig{
		{
			Type:              model.ServiceTypeConsultation,
			Location:          model.LocationOnsite,
			ProviderServiceID: "svc-consult-onsite",
			StaffIDs:          []string{"staff-emre", "staff-lina"},
			DurationMinutes:   30,
			PriceAmountCents:  4500,
		},
		{
			Type:              model.ServiceTypeConsultation,
			Location:          model.LocationOnline,
			ProviderServiceID: "svc-consult-online",
			StaffIDs:          []string{"staff-emre", "staff-lina"},
			DurationMinutes:   20,
			PriceAmountCents:  2500,
		},
		{
			Type:              model.ServiceTypeHairTransplant,
			Location:          model.LocationOnsite,
			ProviderServiceID: "svc-transplant-onsite",
			StaffIDs:          []string{"staff-emre", "staff-deniz"},
			PreferredStaffID:  "staff-emre",
			DurationMinutes:   240,
			PriceAmountCents:  189500,
		},
		{
			Type:              model.ServiceTypePRP,
			Location:          model.LocationOnsite,
			ProviderServiceID: "svc-prp-onsite",
			StaffIDs:          []string{"staff-deniz"},
			DurationMinutes:   45,
			PriceAmountCents:  19500,
		},
		{
			Type:              model.ServiceTypePRP,
			Location:          model.LocationOnline,
			ProviderServiceID: "svc-prp-intake-online",
			StaffIDs:          []string{"staff-deniz", "staff-lina"},
			DurationMinutes:   15,
			PriceAmountCents:  0,
		},
	}
}

func defaultStaff() []model.StaffInfo {
	return []model.StaffInfo{
		{ID: "staff-emre", DisplayName: "Dr. Emre Aydin"},
		{ID: "staff-lina", DisplayName: "Lina Verhoeven"},
		{ID: "staff-deniz", DisplayName: "Deniz Kaya"},
	}
}
