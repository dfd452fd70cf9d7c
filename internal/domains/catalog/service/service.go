package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/registry_mock.go -package=mocks

import (
	"fmt"

	"agenda/internal/domains/catalog/model"
	"agenda/shared/failure"
)

// UnknownStaffName is returned for staff ids we have no record of. Lookup is
// display-only, so guessing beats failing here.
const UnknownStaffName = "Unknown Staff"

// Registry resolves (service type, location) pairs to their provider-side
// configuration. Pure lookup over data fixed at process start.
type Registry interface {
	Resolve(serviceType, location string) (model.ServiceConfig, error)
	StaffName(id string) string
	All() []model.ServiceConfig
}

type registryImpl struct {
	services map[model.ServiceKey]model.ServiceConfig
	staff    map[string]model.StaffInfo
	ordered  []model.ServiceConfig
}

func New() Registry {
	return newWith(defaultServices(), defaultStaff())
}

func newWith(services []model.ServiceConfig, staff []model.StaffInfo) Registry {
	reg := &registryImpl{
		services: make(map[model.ServiceKey]model.ServiceConfig, len(services)),
		staff:    make(map[string]model.StaffInfo, len(staff)),
		ordered:  services,
	}

	for _, svc := range services {
		reg.services[model.ServiceKey{Type: svc.Type, Location: svc.Location}] = svc
	}

	for _, member := range staff {
		reg.staff[member.ID] = member
	}

	return reg
}

func (r *registryImpl) Resolve(serviceType, location string) (model.ServiceConfig, error) {
	key := model.ServiceKey{Type: model.ServiceType(serviceType), Location: model.Location(location)}

	svc, ok := r.services[key]
	if !ok {
		return model.ServiceConfig{}, failure.NotFound(fmt.Sprintf("unknown service %q at location %q", serviceType, location)) //nolint:wrapcheck
	}

	return svc, nil
}

func (r *registryImpl) StaffName(id string) string {
	member, ok := r.staff[id]
	if !ok {
		return UnknownStaffName
	}

	return member.DisplayName
}

func (r *registryImpl) All() []model.ServiceConfig {
	return r.ordered
}
