package commands

import (
	"context"
	"strings"
	"time"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"
	"autoservice/internal/core/ports"
)

// NewOrderNotifier fans out a "new order in your region" notification after
// an order is committed. Implementations run detached: they must never
// block the caller for long or surface errors into the order flow.
type NewOrderNotifier interface {
	NotifyNewOrder(ctx context.Context, orderID kernel.UUID)
}

// CreateOrderCommandHandler handles the business logic for order placement:
// catalog reference resolution, vehicle/job composition and the initial
// "created" status. After the transaction commits it triggers the regional
// contractor notification fan-out.
type CreateOrderCommandHandler struct {
	uowFactory OrderCatalogUoWFactory
	notifier   NewOrderNotifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// The notifier may be nil when notification fan-out is disabled.
func NewCreateOrderCommandHandler(uowFactory OrderCatalogUoWFactory, notifier NewOrderNotifier) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order placement command inside one transaction and
// returns the human-facing order number. Catalog references are resolved by
// natural key, so repeated brands, contacts and addresses reuse existing
// rows.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	params := cmd.Params()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()

	aggregate, err := h.buildOrder(ctx, catalogRepo, params)
	if err != nil {
		return "", err
	}
	for _, spec := range params.Vehicles {
		if err = h.attachVehicle(ctx, catalogRepo, aggregate, spec); err != nil {
			return "", err
		}
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if h.notifier != nil {
		h.notifier.NotifyNewOrder(context.WithoutCancel(ctx), aggregate.ID())
	}

	return aggregate.Number(), nil
}

func (h *CreateOrderCommandHandler) buildOrder(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	params CreateOrderParams,
) (*order.Order, error) {
	var customerContact *catalog.Contact
	if params.CustomerID == nil {
		contact, err := catalogRepo.GetOrCreateContact(ctx, params.ContactName, params.ContactPhone)
		if err != nil {
			return nil, err
		}
		customerContact = &contact
	}

	var driverContact *catalog.Contact
	if strings.TrimSpace(params.DriverPhone) != "" {
		contact, err := catalogRepo.GetOrCreateContact(ctx, params.DriverName, params.DriverPhone)
		if err != nil {
			return nil, err
		}
		driverContact = &contact
	}

	address, err := catalogRepo.GetOrCreateAddress(ctx, params.Street, params.City, params.Region)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		params.OrderID,
		params.CustomerID,
		customerContact,
		driverContact,
		address,
		params.Description,
		params.NeedEvacuator,
		params.NeedFieldTechnician,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if params.Latitude != nil && params.Longitude != nil {
		if err = aggregate.SetCoordinates(*params.Latitude, *params.Longitude); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}

func (h *CreateOrderCommandHandler) attachVehicle(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	aggregate *order.Order,
	spec VehicleSpec,
) error {
	vehicle, err := catalogRepo.GetOrCreateVehicle(
		ctx, spec.Brand, spec.Model, catalog.VehicleType(spec.VehicleType), spec.TrailerType)
	if err != nil {
		return err
	}

	assignment, err := order.NewVehicleAssignment(
		kernel.NewUUID(), vehicle, spec.LicensePlate, spec.VIN, spec.Mileage)
	if err != nil {
		return err
	}

	jobSpecs, err := resolveJobSpecs(ctx, catalogRepo, spec.Jobs, true)
	if err != nil {
		return err
	}
	if err = assignment.ReplaceJobs(jobSpecs); err != nil {
		return err
	}

	return aggregate.AttachVehicle(assignment)
}

// resolveJobSpecs turns external category ids and task names into catalog
// references inside the caller's transaction. Tasks created at order
// placement are agreed by definition; contractor proposals are not.
func resolveJobSpecs(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	jobs []JobSpec,
	agreed bool,
) ([]order.JobSpec, error) {
	specs := make([]order.JobSpec, 0, len(jobs))

	for _, job := range jobs {
		category, err := catalogRepo.GetOrCreateJobCategory(ctx, job.CategoryID)
		if err != nil {
			return nil, err
		}

		spec := order.JobSpec{Category: category}
		for _, name := range job.Tasks {
			task, err := catalogRepo.GetOrCreateTask(ctx, name, agreed)
			if err != nil {
				return nil, err
			}
			spec.Tasks = append(spec.Tasks, task)
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
