package commands

import (
	"context"
	"time"
)

// SetVehicleFieldsCommandHandler updates the license plate, VIN and mileage
// of one vehicle on an order. VIN uniqueness within the order is enforced
// by the aggregate and surfaces as order.ErrDuplicateVin.
type SetVehicleFieldsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetVehicleFieldsCommandHandler creates a handler for vehicle field updates.
func NewSetVehicleFieldsCommandHandler(uowFactory OrderUoWFactory) SetVehicleFieldsCommandHandler {
	return SetVehicleFieldsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the vehicle field update command.
func (h *SetVehicleFieldsCommandHandler) Handle(ctx context.Context, cmd SetVehicleFieldsCommand) error {
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

	if err = aggregate.SetVehicleFields(
		cmd.VehicleID(), cmd.LicensePlate(), cmd.VIN(), cmd.Mileage(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
