package model

// ServiceType is the closed set of bookable treatment types.
type ServiceType string

const (
	ServiceTypeConsultation   ServiceType = "consult"
	ServiceTypeHairTransplant ServiceType = "haartransplantatie"
	ServiceTypePRP            ServiceType = "prp"
)

// Location is the closed set of places a service can be delivered.
type Location string

const (
	LocationOnsite Location = "onsite"
	LocationOnline Location = "online"
)

// ServiceKey identifies one (type, location) combination in the registry.
type ServiceKey struct {
	Type     ServiceType
	Location Location
}

// ServiceConfig maps one (type, location) combination to the provider's
// service id, the staff pool eligible to deliver it, and its commercial
// attributes. Loaded once at process start, immutable afterwards.
type ServiceConfig struct {
	Type              ServiceType
	Location          Location
	ProviderServiceID string
	StaffIDs          []string
	PreferredStaffID  string
	DurationMinutes   int
	PriceAmountCents  int64
}

// Key returns the stable storage/cache key for this service, e.g.
// "haartransplantatie_onsite".
func (c ServiceConfig) Key() string {
	return string(c.Type) + "_" + string(c.Location)
}

// StaffInfo is a display-name lookup entry, no lifecycle.
type StaffInfo struct {
	ID          string
	DisplayName string
}
