package order

import (
	"fmt"
	"time"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
)

// CategoryView groups the requested tasks under one job category. A
// category appears once per vehicle even when several job rows reference
// it.
type CategoryView struct {
	Category catalog.JobCategory
	Tasks    []catalog.Task
}

// VehicleView is the nested composition of one vehicle: its catalog entry,
// the order-specific fields and the deduplicated category/task tree.
type VehicleView struct {
	AssignmentID kernel.UUID
	Vehicle      catalog.Vehicle
	LicensePlate string
	VIN          string
	Mileage      int
	Categories   []CategoryView
}

// View is the role-projected read model of an order. Contact fields and
// the description are stripped for anonymized listings; the chat reference
// is present only once a chat exists and the order left Created.
type View struct {
	ID                  kernel.UUID
	Number              string
	Status              Status
	Address             catalog.Address
	Description         string
	NeedEvacuator       bool
	NeedFieldTechnician bool
	CustomerContact     *catalog.Contact
	DriverContact       *catalog.Contact
	MasterID            *kernel.UUID
	ChatID              *kernel.UUID
	Vehicles            []VehicleView
	Cost                int
	Anonymized          bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Composition reconstructs the nested vehicle view from the flat job rows:
// job categories are deduplicated per vehicle and their tasks collected
// underneath, preserving insertion order.
func (o *Order) Composition() []VehicleView {
	views := make([]VehicleView, 0, len(o.vehicles))

	for _, assignment := range o.vehicles {
		view := VehicleView{
			AssignmentID: assignment.id,
			Vehicle:      assignment.vehicle,
			LicensePlate: assignment.licensePlate,
			VIN:          assignment.vin,
			Mileage:      assignment.mileage,
		}

		index := make(map[int]int)
		for _, job := range assignment.jobs {
			pos, ok := index[job.category.CategoryID()]
			if !ok {
				pos = len(view.Categories)
				index[job.category.CategoryID()] = pos
				view.Categories = append(view.Categories, CategoryView{Category: job.category})
			}
			if job.task != nil {
				view.Categories[pos].Tasks = append(view.Categories[pos].Tasks, *job.task)
			}
		}

		views = append(views, view)
	}

	return views
}

// Cost prices the order: the number of distinct job categories on each
// vehicle, summed over vehicles, times the unit price. Task counts do not
// affect the cost.
func (o *Order) Cost(unitPrice int) int {
	total := 0
	for _, assignment := range o.vehicles {
		total += assignment.DistinctCategoryCount() * unitPrice
	}
	return total
}

// Number returns the human-facing display identifier, a short id prefix
// plus the creation date. It is not globally unique across cancellation
// snapshots.
func (o *Order) Number() string {
	return fmt.Sprintf("%s - %s", o.id.String()[:8], o.createdAt.Format("20060102"))
}

// Project builds the role-gated view of the order for one viewer.
//
// Visibility rules:
//   - a customer sees only orders they own
//   - a contractor sees an engaged order only when assigned to it; open and
//     cancelled orders are visible but anonymized (no contacts, no
//     description)
//   - the chat reference appears only once the order left Created
func (o *Order) Project(role kernel.Role, viewerID kernel.UUID, unitPrice int) (View, error) {
	engaged := o.status != Created && o.status != Cancelled

	switch role {
	case kernel.RoleCustomer:
		if o.customerID == nil || !o.customerID.IsEqual(viewerID) {
			return View{}, ErrAccessDenied
		}
	case kernel.RoleContractor:
		assigned := o.masterID != nil && o.masterID.IsEqual(viewerID)
		if engaged && !assigned {
			return View{}, ErrAccessDenied
		}
		if !engaged {
			return o.anonymizedView(unitPrice), nil
		}
	default:
		return View{}, ErrAccessDenied
	}

	view := o.anonymizedView(unitPrice)
	view.Anonymized = false
	view.Description = o.description
	view.CustomerContact = o.customerContact
	view.DriverContact = o.driverContact
	view.MasterID = o.masterID
	if o.status != Created {
		view.ChatID = o.chatID
	}

	return view, nil
}

// ProjectAnonymous is the public read used before any identity is known:
// only open orders are visible, always anonymized.
func (o *Order) ProjectAnonymous(unitPrice int) (View, error) {
	if o.status != Created {
		return View{}, ErrAccessDenied
	}
	return o.anonymizedView(unitPrice), nil
}

func (o *Order) anonymizedView(unitPrice int) View {
	return View{
		ID:                  o.id,
		Number:              o.Number(),
		Status:              o.status,
		Address:             o.address,
		NeedEvacuator:       o.needEvacuator,
		NeedFieldTechnician: o.needFieldTechnician,
		Vehicles:            o.Composition(),
		Cost:                o.Cost(unitPrice),
		Anonymized:          true,
		CreatedAt:           o.createdAt,
		UpdatedAt:           o.updatedAt,
	}
}
