package order_test

import (
	"testing"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitPrice = 500

func TestOrder_Cost(t *testing.T) {
	t.Run("distinct categories drive the price, tasks do not", func(t *testing.T) {
		o := newAnonymousOrder(t)
		attachVehicleWithJobs(t, o, "Volvo", "FH16", "", []order.JobSpec{
			{Category: testCategory(t, 1), Tasks: []catalog.Task{testTask(t, "replace pads"), testTask(t, "bleed brakes")}},
			{Category: testCategory(t, 2)},
			{Category: testCategory(t, 3)},
		})

		assert.Equal(t, 3*unitPrice, o.Cost(unitPrice))
	})

	t.Run("sums over vehicles", func(t *testing.T) {
		o := newAnonymousOrder(t)
		attachVehicleWithJobs(t, o, "Volvo", "FH16", "", []order.JobSpec{
			{Category: testCategory(t, 1)},
			{Category: testCategory(t, 2)},
		})
		attachVehicleWithJobs(t, o, "Scania", "R500", "", []order.JobSpec{
			{Category: testCategory(t, 1)},
		})

		assert.Equal(t, 3*unitPrice, o.Cost(unitPrice))
	})

	t.Run("no vehicles, no cost", func(t *testing.T) {
		assert.Equal(t, 0, newAnonymousOrder(t).Cost(unitPrice))
	})
}

func TestOrder_Composition(t *testing.T) {
	o := newAnonymousOrder(t)
	attachVehicleWithJobs(t, o, "Volvo", "FH16", "VIN123", []order.JobSpec{
		{Category: testCategory(t, 1), Tasks: []catalog.Task{testTask(t, "replace pads"), testTask(t, "bleed brakes")}},
		{Category: testCategory(t, 2)},
	})

	composition := o.Composition()

	require.Len(t, composition, 1)
	vehicle := composition[0]
	assert.Equal(t, "Volvo", vehicle.Vehicle.Brand())
	assert.Equal(t, "VIN123", vehicle.VIN)
	require.Len(t, vehicle.Categories, 2)
	assert.Equal(t, 1, vehicle.Categories[0].Category.CategoryID())
	assert.Len(t, vehicle.Categories[0].Tasks, 2)
	assert.Empty(t, vehicle.Categories[1].Tasks)
}

func TestOrder_Number(t *testing.T) {
	o := newAnonymousOrder(t)

	number := o.Number()

	assert.Contains(t, number, " - 20250314")
	assert.Equal(t, o.ID().String()[:8], number[:8])
}

func TestOrder_Project(t *testing.T) {
	t.Run("unassigned contractor gets an anonymized open order", func(t *testing.T) {
		o := newAnonymousOrder(t)
		attachVehicleWithJobs(t, o, "Volvo", "FH16", "", []order.JobSpec{{Category: testCategory(t, 1)}})

		view, err := o.Project(kernel.RoleContractor, kernel.NewUUID(), unitPrice)

		require.NoError(t, err)
		assert.True(t, view.Anonymized)
		assert.Empty(t, view.Description)
		assert.Nil(t, view.CustomerContact)
		assert.Nil(t, view.MasterID)
		assert.Equal(t, unitPrice, view.Cost)
		assert.Len(t, view.Vehicles, 1)
	})

	t.Run("contractor cannot view another contractor's engaged order", func(t *testing.T) {
		o := newAnonymousOrder(t)
		require.NoError(t, o.Accept(kernel.NewUUID(), testTime))

		_, err := o.Project(kernel.RoleContractor, kernel.NewUUID(), unitPrice)
		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("assigned contractor sees the full order", func(t *testing.T) {
		o := newAnonymousOrder(t)
		masterID := kernel.NewUUID()
		require.NoError(t, o.Accept(masterID, testTime))
		require.NoError(t, o.AttachChat(kernel.NewUUID()))

		view, err := o.Project(kernel.RoleContractor, masterID, unitPrice)

		require.NoError(t, err)
		assert.False(t, view.Anonymized)
		assert.Equal(t, "brakes squeal", view.Description)
		assert.NotNil(t, view.CustomerContact)
		assert.NotNil(t, view.ChatID)
	})

	t.Run("owner sees the order, chat hidden while created", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newCustomerOrder(t, customerID)

		view, err := o.Project(kernel.RoleCustomer, customerID, unitPrice)

		require.NoError(t, err)
		assert.False(t, view.Anonymized)
		assert.Equal(t, "engine makes a knocking sound", view.Description)
		assert.Nil(t, view.ChatID)
	})

	t.Run("customer cannot view someone else's order", func(t *testing.T) {
		o := newCustomerOrder(t, kernel.NewUUID())

		_, err := o.Project(kernel.RoleCustomer, kernel.NewUUID(), unitPrice)
		require.ErrorIs(t, err, order.ErrAccessDenied)
	})
}

func TestOrder_ProjectAnonymous(t *testing.T) {
	t.Run("open orders only", func(t *testing.T) {
		o := newAnonymousOrder(t)

		view, err := o.ProjectAnonymous(unitPrice)
		require.NoError(t, err)
		assert.True(t, view.Anonymized)

		require.NoError(t, o.Accept(kernel.NewUUID(), testTime))
		_, err = o.ProjectAnonymous(unitPrice)
		require.ErrorIs(t, err, order.ErrAccessDenied)
	})
}
