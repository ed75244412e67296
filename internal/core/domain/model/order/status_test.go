package order_test

import (
	"testing"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("parses every valid status", func(t *testing.T) {
		cases := map[string]order.Status{
			"created":                         order.Created,
			"in_progress":                     order.InProgress,
			"accepted_on_maintenance":         order.AcceptedOnMaintenance,
			"problem_diagnosis_by_contractor": order.ProblemDiagnosisByContractor,
			"customer_approval":               order.CustomerApproval,
			"cancelled":                       order.Cancelled,
			"completed":                       order.Completed,
		}

		for str, want := range cases {
			got, err := order.StatusFromString(str)
			require.NoError(t, err, str)
			assert.Equal(t, want, got)
			assert.Equal(t, str, got.String())
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, str := range []string{"", "unknown", "Created", "done"} {
			got, err := order.StatusFromString(str)
			require.Error(t, err, str)
			assert.Equal(t, order.Unknown, got)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Created, order.InProgress, order.AcceptedOnMaintenance,
			order.ProblemDiagnosisByContractor, order.CustomerApproval,
			order.Cancelled, order.Completed,
		} {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(42).Validate())
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestStatus_ValidateTargetFor(t *testing.T) {
	customerTargets := []order.Status{order.Created, order.CustomerApproval, order.Completed}
	contractorTargets := []order.Status{
		order.InProgress, order.AcceptedOnMaintenance, order.ProblemDiagnosisByContractor,
	}

	t.Run("customer whitelist", func(t *testing.T) {
		for _, s := range customerTargets {
			assert.NoError(t, s.ValidateTargetFor(kernel.RoleCustomer), s.String())
		}
		for _, s := range contractorTargets {
			assert.ErrorIs(t, s.ValidateTargetFor(kernel.RoleCustomer), order.ErrStatusChangeNotAllowed, s.String())
		}
	})

	t.Run("contractor whitelist", func(t *testing.T) {
		for _, s := range contractorTargets {
			assert.NoError(t, s.ValidateTargetFor(kernel.RoleContractor), s.String())
		}
		for _, s := range customerTargets {
			assert.ErrorIs(t, s.ValidateTargetFor(kernel.RoleContractor), order.ErrStatusChangeNotAllowed, s.String())
		}
	})

	t.Run("nobody may request cancelled", func(t *testing.T) {
		assert.ErrorIs(t, order.Cancelled.ValidateTargetFor(kernel.RoleCustomer), order.ErrStatusChangeNotAllowed)
		assert.ErrorIs(t, order.Cancelled.ValidateTargetFor(kernel.RoleContractor), order.ErrStatusChangeNotAllowed)
	})

	t.Run("invalid status fails before the whitelist", func(t *testing.T) {
		err := order.Unknown.ValidateTargetFor(kernel.RoleCustomer)
		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrStatusChangeNotAllowed)
	})
}

func TestStatus_ValidateCanHaveMaster(t *testing.T) {
	t.Run("open and cancelled orders are unassigned", func(t *testing.T) {
		assert.NoError(t, order.Created.ValidateCanHaveMaster(false))
		assert.NoError(t, order.Cancelled.ValidateCanHaveMaster(false))
		assert.Error(t, order.Created.ValidateCanHaveMaster(true))
		assert.Error(t, order.Cancelled.ValidateCanHaveMaster(true))
	})

	t.Run("engaged orders require a master", func(t *testing.T) {
		for _, s := range []order.Status{
			order.InProgress, order.AcceptedOnMaintenance,
			order.ProblemDiagnosisByContractor, order.CustomerApproval, order.Completed,
		} {
			assert.NoError(t, s.ValidateCanHaveMaster(true), s.String())
			assert.Error(t, s.ValidateCanHaveMaster(false), s.String())
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.InProgress.IsTerminal())
}
