package services_test

import (
	"testing"
	"time"

	"autoservice/internal/core/domain/model/account"
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitPrice = 500

var testTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newOrderWithCategories(t *testing.T, customerID *kernel.UUID, categories int) *order.Order {
	t.Helper()

	var contact *catalog.Contact
	if customerID == nil {
		c, err := catalog.NewContact(kernel.NewUUID(), "Ivan", "+79990001122")
		require.NoError(t, err)
		contact = &c
	}
	address, err := catalog.NewAddress(kernel.NewUUID(), "Lenina 1", "Tver", "Tver Oblast")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, contact, nil, address, "", false, false, testTime)
	require.NoError(t, err)

	vehicle, err := catalog.NewVehicle(kernel.NewUUID(), "Volvo", "FH16", catalog.VehicleTypeTruck, "")
	require.NoError(t, err)
	assignment, err := order.NewVehicleAssignment(kernel.NewUUID(), vehicle, "", "", 0)
	require.NoError(t, err)

	specs := make([]order.JobSpec, 0, categories)
	for i := 1; i <= categories; i++ {
		category, err := catalog.NewJobCategory(kernel.NewUUID(), i)
		require.NoError(t, err)
		specs = append(specs, order.JobSpec{Category: category})
	}
	require.NoError(t, assignment.ReplaceJobs(specs))
	require.NoError(t, o.AttachVehicle(assignment))

	return o
}

func newAccount(t *testing.T, ownerID kernel.UUID, balance int) *account.Account {
	t.Helper()
	acct, err := account.NewAccount(kernel.NewUUID(), ownerID, balance)
	require.NoError(t, err)
	return acct
}

func TestStatusChanger_ChangeStatus_Accept(t *testing.T) {
	changer := services.NewStatusChanger(unitPrice)

	t.Run("reserves the cost, assigns the contractor and asks for a chat", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newOrderWithCategories(t, &customerID, 2)
		masterID := kernel.NewUUID()
		acct := newAccount(t, masterID, 2000)

		result, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID, acct, testTime)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.MasterID().IsEqual(masterID))
		assert.Equal(t, 2000-2*unitPrice, acct.Balance())
		assert.True(t, result.NeedChat)
		assert.Equal(t, order.InProgress, result.History.Status())
		assert.True(t, result.History.OrderID().IsEqual(o.ID()))
	})

	t.Run("no chat for an anonymous order", func(t *testing.T) {
		o := newOrderWithCategories(t, nil, 1)
		masterID := kernel.NewUUID()

		result, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID,
			newAccount(t, masterID, 1000), testTime)

		require.NoError(t, err)
		assert.False(t, result.NeedChat)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		o := newOrderWithCategories(t, nil, 3)
		masterID := kernel.NewUUID()
		acct := newAccount(t, masterID, 3*unitPrice-1)

		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID, acct, testTime)

		require.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, 3*unitPrice-1, acct.Balance())
	})

	t.Run("already assigned order loses the race", func(t *testing.T) {
		o := newOrderWithCategories(t, nil, 1)
		winner := kernel.NewUUID()
		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, winner,
			newAccount(t, winner, 1000), testTime)
		require.NoError(t, err)

		loser := kernel.NewUUID()
		loserAcct := newAccount(t, loser, 1000)
		_, err = changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, loser, loserAcct, testTime)

		require.ErrorIs(t, err, order.ErrOrderAlreadyInProgress)
		assert.True(t, o.MasterID().IsEqual(winner))
		assert.Equal(t, 1000, loserAcct.Balance())
	})

	t.Run("someone else's account is rejected", func(t *testing.T) {
		o := newOrderWithCategories(t, nil, 1)
		masterID := kernel.NewUUID()

		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID,
			newAccount(t, kernel.NewUUID(), 1000), testTime)

		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("customers cannot accept", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newOrderWithCategories(t, &customerID, 1)

		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleCustomer, customerID,
			newAccount(t, customerID, 1000), testTime)

		require.ErrorIs(t, err, order.ErrStatusChangeNotAllowed)
	})
}

func TestStatusChanger_ChangeStatus(t *testing.T) {
	changer := services.NewStatusChanger(unitPrice)

	acceptedOrder := func(t *testing.T, customerID kernel.UUID, masterID kernel.UUID) *order.Order {
		t.Helper()
		o := newOrderWithCategories(t, &customerID, 1)
		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID,
			newAccount(t, masterID, 1000), testTime)
		require.NoError(t, err)
		return o
	}

	t.Run("assigned contractor progresses the order", func(t *testing.T) {
		masterID := kernel.NewUUID()
		o := acceptedOrder(t, kernel.NewUUID(), masterID)

		result, err := changer.ChangeStatus(o, order.AcceptedOnMaintenance, kernel.RoleContractor, masterID, nil, testTime)

		require.NoError(t, err)
		assert.Equal(t, order.AcceptedOnMaintenance, o.Status())
		assert.False(t, result.NeedChat)
		require.NotNil(t, result.History.MasterID())
		assert.True(t, result.History.MasterID().IsEqual(masterID))
	})

	t.Run("owning customer completes the order", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := acceptedOrder(t, customerID, kernel.NewUUID())

		_, err := changer.ChangeStatus(o, order.Completed, kernel.RoleCustomer, customerID, nil, testTime)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("a different contractor is denied", func(t *testing.T) {
		o := acceptedOrder(t, kernel.NewUUID(), kernel.NewUUID())

		_, err := changer.ChangeStatus(o, order.AcceptedOnMaintenance, kernel.RoleContractor, kernel.NewUUID(), nil, testTime)

		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("target outside the role whitelist", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := acceptedOrder(t, customerID, kernel.NewUUID())

		_, err := changer.ChangeStatus(o, order.AcceptedOnMaintenance, kernel.RoleCustomer, customerID, nil, testTime)

		require.ErrorIs(t, err, order.ErrStatusChangeNotAllowed)
	})
}

func TestStatusChanger_Cancel(t *testing.T) {
	changer := services.NewStatusChanger(unitPrice)

	t.Run("owning customer cancels an accepted order", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newOrderWithCategories(t, &customerID, 2)
		masterID := kernel.NewUUID()
		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID,
			newAccount(t, masterID, 2000), testTime)
		require.NoError(t, err)

		clone, history, err := changer.Cancel(o, kernel.RoleCustomer, customerID, testTime.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, clone.Status())
		assert.Equal(t, order.Cancelled, history.Status())
		assert.True(t, history.OrderID().IsEqual(clone.ID()))
		require.NotNil(t, history.MasterID(), "the history row keeps the cancelled-away contractor")
		assert.True(t, history.MasterID().IsEqual(masterID))
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.MasterID())
		assert.Nil(t, o.ChatID())
	})

	t.Run("contractors cannot cancel", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newOrderWithCategories(t, &customerID, 1)
		masterID := kernel.NewUUID()
		_, err := changer.ChangeStatus(o, order.InProgress, kernel.RoleContractor, masterID,
			newAccount(t, masterID, 1000), testTime)
		require.NoError(t, err)

		_, _, err = changer.Cancel(o, kernel.RoleContractor, masterID, testTime)

		require.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("a never-accepted order cannot be cancelled", func(t *testing.T) {
		customerID := kernel.NewUUID()
		o := newOrderWithCategories(t, &customerID, 1)

		_, _, err := changer.Cancel(o, kernel.RoleCustomer, customerID, testTime)

		require.ErrorIs(t, err, order.ErrCancelOrderNotAllowed)
	})
}
