package order

import (
	"fmt"

	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"
)

// JobSpec is the requested scope for one job category on a vehicle: the
// category plus zero or more agreed tasks.
type JobSpec struct {
	Category catalog.JobCategory
	Tasks    []catalog.Task
}

// JobAssignment links one job category, and optionally one task, to a
// vehicle within an order. A category requested without tasks is stored as
// a single assignment with no task: the category is wanted but unscoped.
type JobAssignment struct {
	id       kernel.UUID
	category catalog.JobCategory
	task     *catalog.Task
}

// NewJobAssignment creates a job assignment. The task may be nil.
func NewJobAssignment(id kernel.UUID, category catalog.JobCategory, task *catalog.Task) (JobAssignment, error) {
	if err := id.Validate(); err != nil {
		return JobAssignment{}, err
	}
	if err := category.ID().Validate(); err != nil {
		return JobAssignment{}, errs.NewValueIsRequiredErrorWithCause("job category", err)
	}
	return JobAssignment{id: id, category: category, task: task}, nil
}

// ID returns the assignment's unique identifier.
func (j JobAssignment) ID() kernel.UUID { return j.id }

// Category returns the requested job category.
func (j JobAssignment) Category() catalog.JobCategory { return j.category }

// Task returns the agreed task, nil when the category is unscoped.
func (j JobAssignment) Task() *catalog.Task { return j.task }

// VehicleAssignment links one catalog vehicle to an order and carries the
// order-specific vehicle fields plus the requested job scope.
//
// Invariants (enforced by the Order aggregate):
//   - a vehicle appears at most once per order (by its natural key)
//   - a VIN, if present, is unique within the order
//   - (category, task) pairs are unique within the assignment
type VehicleAssignment struct {
	id           kernel.UUID
	vehicle      catalog.Vehicle
	licensePlate string
	vin          string
	mileage      int
	jobs         []JobAssignment
}

// NewVehicleAssignment creates a vehicle assignment with no job scope yet.
func NewVehicleAssignment(
	id kernel.UUID,
	vehicle catalog.Vehicle,
	licensePlate, vin string,
	mileage int,
) (*VehicleAssignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := vehicle.ID().Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("vehicle", err)
	}
	if mileage < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("mileage", fmt.Errorf("%d is negative", mileage))
	}

	return &VehicleAssignment{
		id:           id,
		vehicle:      vehicle,
		licensePlate: licensePlate,
		vin:          vin,
		mileage:      mileage,
	}, nil
}

// RestoreVehicleAssignment reconstructs an assignment from persistent
// storage, including its job rows.
func RestoreVehicleAssignment(
	id kernel.UUID,
	vehicle catalog.Vehicle,
	licensePlate, vin string,
	mileage int,
	jobs []JobAssignment,
) (*VehicleAssignment, error) {
	assignment, err := NewVehicleAssignment(id, vehicle, licensePlate, vin, mileage)
	if err != nil {
		return nil, err
	}
	assignment.jobs = jobs
	return assignment, nil
}

// ID returns the assignment's unique identifier.
func (v *VehicleAssignment) ID() kernel.UUID { return v.id }

// Vehicle returns the catalog vehicle this assignment links.
func (v *VehicleAssignment) Vehicle() catalog.Vehicle { return v.vehicle }

// LicensePlate returns the license plate, empty when not specified.
func (v *VehicleAssignment) LicensePlate() string { return v.licensePlate }

// VIN returns the vehicle identification number, empty when not specified.
func (v *VehicleAssignment) VIN() string { return v.vin }

// Mileage returns the vehicle mileage, zero when not specified.
func (v *VehicleAssignment) Mileage() int { return v.mileage }

// Jobs returns a copy of the job assignments.
func (v *VehicleAssignment) Jobs() []JobAssignment {
	jobs := make([]JobAssignment, len(v.jobs))
	copy(jobs, v.jobs)
	return jobs
}

// DistinctCategoryCount returns the number of distinct job categories on
// the vehicle. This count, not the task count, drives the order cost.
func (v *VehicleAssignment) DistinctCategoryCount() int {
	seen := make(map[int]bool, len(v.jobs))
	for _, job := range v.jobs {
		seen[job.category.CategoryID()] = true
	}
	return len(seen)
}

// ReplaceJobs discards every job assignment on the vehicle and rebuilds the
// set from specs. This is a destructive replace, not a merge: callers must
// pass the full desired scope. Duplicate (category, task) pairs collapse
// into a single assignment; a category with no tasks keeps exactly one
// task-less assignment.
func (v *VehicleAssignment) ReplaceJobs(specs []JobSpec) error {
	type jobKey struct {
		categoryID int
		taskName   string
	}

	jobs := make([]JobAssignment, 0, len(specs))
	seen := make(map[jobKey]bool)

	add := func(category catalog.JobCategory, task *catalog.Task) error {
		key := jobKey{categoryID: category.CategoryID()}
		if task != nil {
			key.taskName = task.Name()
		}
		if seen[key] {
			return nil
		}
		seen[key] = true

		job, err := NewJobAssignment(kernel.NewUUID(), category, task)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
		return nil
	}

	for _, spec := range specs {
		if len(spec.Tasks) == 0 {
			if err := add(spec.Category, nil); err != nil {
				return err
			}
			continue
		}
		for i := range spec.Tasks {
			if err := add(spec.Category, &spec.Tasks[i]); err != nil {
				return err
			}
		}
	}

	v.jobs = jobs
	return nil
}

// ClearTasks wipes the task selections while keeping the requested
// categories: the result is one task-less assignment per distinct category.
// Used when a cancelled order returns to the open pool.
func (v *VehicleAssignment) ClearTasks() error {
	specs := make([]JobSpec, 0, len(v.jobs))
	seen := make(map[int]bool, len(v.jobs))
	for _, job := range v.jobs {
		if seen[job.category.CategoryID()] {
			continue
		}
		seen[job.category.CategoryID()] = true
		specs = append(specs, JobSpec{Category: job.category})
	}
	return v.ReplaceJobs(specs)
}

func (v *VehicleAssignment) setFields(licensePlate, vin string, mileage int) error {
	if mileage < 0 {
		return errs.NewValueIsInvalidErrorWithCause("mileage", fmt.Errorf("%d is negative", mileage))
	}
	v.licensePlate = licensePlate
	v.vin = vin
	v.mileage = mileage
	return nil
}

// clone deep-copies the assignment with fresh row identities so a
// cancellation snapshot shares nothing mutable with the original.
func (v *VehicleAssignment) clone() *VehicleAssignment {
	jobs := make([]JobAssignment, len(v.jobs))
	copy(jobs, v.jobs)
	for i := range jobs {
		jobs[i].id = kernel.NewUUID()
	}

	return &VehicleAssignment{
		id:           kernel.NewUUID(),
		vehicle:      v.vehicle,
		licensePlate: v.licensePlate,
		vin:          v.vin,
		mileage:      v.mileage,
		jobs:         jobs,
	}
}
