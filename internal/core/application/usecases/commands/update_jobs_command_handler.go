package commands

import (
	"context"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
)

// UpdateJobsCommandHandler replaces the job scope of one vehicle with the
// contractor's diagnosis proposal and moves the order to
// problem_diagnosis_by_contractor, appending the matching history record.
type UpdateJobsCommandHandler struct {
	uowFactory OrderCatalogUoWFactory
}

// NewUpdateJobsCommandHandler creates a handler for diagnosis proposals.
func NewUpdateJobsCommandHandler(uowFactory OrderCatalogUoWFactory) UpdateJobsCommandHandler {
	return UpdateJobsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job replacement command. Only the assigned
// contractor may propose a scope; the replace is destructive, so the
// command carries the full desired set.
func (h *UpdateJobsCommandHandler) Handle(ctx context.Context, cmd UpdateJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.CheckAccess(cmd.Role(), cmd.UserID()); err != nil {
		return err
	}
	if cmd.Role() != kernel.RoleContractor {
		return order.ErrAccessDenied
	}

	// proposed tasks are not agreed until the customer approves the scope
	specs, err := resolveJobSpecs(ctx, uow.CatalogRepository(), cmd.Jobs(), false)
	if err != nil {
		return err
	}

	now := time.Now()
	if err = aggregate.ReplaceJobs(cmd.VehicleID(), specs, now); err != nil {
		return err
	}
	if err = aggregate.SetStatus(order.ProblemDiagnosisByContractor, now); err != nil {
		return err
	}

	history, err := order.NewHistoryEntry(kernel.NewUUID(), aggregate.ID(), aggregate.Status(), aggregate.MasterID(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = orderRepo.AddHistory(ctx, history); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
