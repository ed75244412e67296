package catalog_test

import (
	"testing"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobCategory(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		category, err := catalog.NewJobCategory(kernel.NewUUID(), 6)

		require.NoError(t, err)
		assert.Equal(t, 6, category.CategoryID())
	})

	t.Run("rejects non positive category id", func(t *testing.T) {
		_, err := catalog.NewJobCategory(kernel.NewUUID(), 0)
		require.Error(t, err)

		_, err = catalog.NewJobCategory(kernel.NewUUID(), -1)
		require.Error(t, err)
	})

	t.Run("rejects zero value id", func(t *testing.T) {
		_, err := catalog.NewJobCategory(kernel.UUID{}, 6)
		require.Error(t, err)
	})
}

func TestNewTask(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task, err := catalog.NewTask(kernel.NewUUID(), "replace brake pads", true)

		require.NoError(t, err)
		assert.Equal(t, "replace brake pads", task.Name())
		assert.True(t, task.Agreed())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := catalog.NewTask(kernel.NewUUID(), "  ", false)
		require.Error(t, err)
	})
}

func TestNewVehicle(t *testing.T) {
	t.Run("valid truck", func(t *testing.T) {
		vehicle, err := catalog.NewVehicle(kernel.NewUUID(), "Volvo", "FH16", catalog.VehicleTypeTruck, "")

		require.NoError(t, err)
		assert.Equal(t, "Volvo", vehicle.Brand())
		assert.Equal(t, catalog.VehicleTypeTruck, vehicle.Type())
	})

	t.Run("rejects blank brand", func(t *testing.T) {
		_, err := catalog.NewVehicle(kernel.NewUUID(), "", "FH16", catalog.VehicleTypeTruck, "")
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := catalog.NewVehicle(kernel.NewUUID(), "Volvo", "", catalog.VehicleType("bus"), "")
		require.Error(t, err)
	})

	t.Run("natural key comparison ignores id", func(t *testing.T) {
		a, err := catalog.NewVehicle(kernel.NewUUID(), "Scania", "R500", catalog.VehicleTypeTruck, "")
		require.NoError(t, err)
		b, err := catalog.NewVehicle(kernel.NewUUID(), "Scania", "R500", catalog.VehicleTypeTruck, "")
		require.NoError(t, err)
		c, err := catalog.NewVehicle(kernel.NewUUID(), "Scania", "R450", catalog.VehicleTypeTruck, "")
		require.NoError(t, err)

		assert.True(t, a.HasSameKey(b))
		assert.False(t, a.HasSameKey(c))
	})
}

func TestNewContact(t *testing.T) {
	t.Run("valid contact", func(t *testing.T) {
		contact, err := catalog.NewContact(kernel.NewUUID(), "Ivan", "+79990001122")

		require.NoError(t, err)
		assert.Equal(t, "+79990001122", contact.Phone())
	})

	t.Run("rejects blank phone", func(t *testing.T) {
		_, err := catalog.NewContact(kernel.NewUUID(), "Ivan", "")
		require.Error(t, err)
	})
}

func TestNewAddress(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		address, err := catalog.NewAddress(kernel.NewUUID(), "Lenina 1", "Tver", "Tver Oblast")

		require.NoError(t, err)
		assert.Equal(t, "Tver Oblast", address.Region())
		assert.Equal(t, "Tver", address.City())
	})

	t.Run("rejects blank region", func(t *testing.T) {
		_, err := catalog.NewAddress(kernel.NewUUID(), "Lenina 1", "Tver", "")
		require.Error(t, err)
	})
}
