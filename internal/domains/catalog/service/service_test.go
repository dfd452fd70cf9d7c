package service_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/service"
	"agenda/shared/failure"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := service.New()

	t.Run("known service", func(t *testing.T) {
		svc, err := registry.Resolve("haartransplantatie", "onsite")

		require.NoError(t, err)
		assert.Equal(t, model.ServiceTypeHairTransplant, svc.Type)
		assert.Equal(t, model.LocationOnsite, svc.Location)
		assert.Equal(t, "haartransplantatie_onsite", svc.Key())
		assert.NotEmpty(t, svc.ProviderServiceID)
		assert.NotEmpty(t, svc.StaffIDs)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := registry.Resolve("massage", "onsite")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("known type at wrong location", func(t *testing.T) {
		_, err := registry.Resolve("haartransplantatie", "online")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRegistry_StaffName(t *testing.T) {
	registry := service.New()

	assert.Equal(t, "Dr. Emre Aydin", registry.StaffName("staff-emre"))
	assert.Equal(t, service.UnknownStaffName, registry.StaffName("staff-nobody"))
}

func TestRegistry_All(t *testing.T) {
	registry := service.New()

	services := registry.All()

	require.NotEmpty(t, services)

	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		assert.False(t, seen[svc.Key()], "duplicate service key %s", svc.Key())
		seen[svc.Key()] = true

		resolved, err := registry.Resolve(string(svc.Type), string(svc.Location))
		require.NoError(t, err)
		assert.Equal(t, svc.ProviderServiceID, resolved.ProviderServiceID)
	}
}
