package http

import (
	"time"

	"autoservice/internal/core/application/usecases/commands"
	"autoservice/internal/core/application/usecases/queries"
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/order"
)

// Error is the uniform failure payload: a stable machine-readable code
// plus a human-readable message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jobSpecRequest struct {
	CategoryID int      `json:"category_id"`
	Tasks      []string `json:"tasks,omitempty"`
}

type vehicleSpecRequest struct {
	Brand        string           `json:"brand"`
	Model        string           `json:"model,omitempty"`
	VehicleType  string           `json:"vehicle_type"`
	TrailerType  string           `json:"trailer_type,omitempty"`
	LicensePlate string           `json:"license_plate,omitempty"`
	VIN          string           `json:"vin,omitempty"`
	Mileage      int              `json:"mileage,omitempty"`
	Jobs         []jobSpecRequest `json:"jobs"`
}

type createOrderRequest struct {
	ContactName         string             `json:"contact_name,omitempty"`
	ContactPhone        string             `json:"contact_phone,omitempty"`
	DriverName          string             `json:"driver_name,omitempty"`
	DriverPhone         string             `json:"driver_phone,omitempty"`
	Street              string             `json:"street,omitempty"`
	City                string             `json:"city,omitempty"`
	Region              string             `json:"region"`
	Latitude            *float64           `json:"latitude,omitempty"`
	Longitude           *float64           `json:"longitude,omitempty"`
	Description         string             `json:"description,omitempty"`
	NeedEvacuator       bool               `json:"need_evacuator,omitempty"`
	NeedFieldTechnician bool               `json:"need_field_technician,omitempty"`
	Vehicles            []vehicleSpecRequest `json:"vehicles"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type setVehicleFieldsRequest struct {
	LicensePlate string `json:"license_plate"`
	VIN          string `json:"vin"`
	Mileage      int    `json:"mileage"`
}

type updateJobsRequest struct {
	Jobs []jobSpecRequest `json:"jobs"`
}

type linkOrdersRequest struct {
	Phone string `json:"phone"`
}

type contactResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type addressResponse struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	Region string `json:"region"`
}

type categoryResponse struct {
	CategoryID int      `json:"category_id"`
	Tasks      []string `json:"tasks,omitempty"`
}

type vehicleResponse struct {
	ID           string             `json:"id"`
	Brand        string             `json:"brand"`
	Model        string             `json:"model,omitempty"`
	VehicleType  string             `json:"vehicle_type"`
	TrailerType  string             `json:"trailer_type,omitempty"`
	LicensePlate string             `json:"license_plate,omitempty"`
	VIN          string             `json:"vin,omitempty"`
	Mileage      int                `json:"mileage,omitempty"`
	Categories   []categoryResponse `json:"categories"`
}

type orderResponse struct {
	ID                  string            `json:"id"`
	Number              string            `json:"number"`
	Status              string            `json:"status"`
	Address             addressResponse   `json:"address"`
	Description         string            `json:"description,omitempty"`
	NeedEvacuator       bool              `json:"need_evacuator"`
	NeedFieldTechnician bool              `json:"need_field_technician"`
	CustomerContact     *contactResponse  `json:"customer_contact,omitempty"`
	DriverContact       *contactResponse  `json:"driver_contact,omitempty"`
	MasterID            *string           `json:"master_id,omitempty"`
	ChatID              *string           `json:"chat_id,omitempty"`
	Vehicles            []vehicleResponse `json:"vehicles"`
	Cost                int               `json:"cost"`
	Balance             *int              `json:"balance,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type orderSummaryResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Street    string    `json:"street,omitempty"`
	City      string    `json:"city,omitempty"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	FromRole   string    `json:"from_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func jobSpecsFromRequest(specs []jobSpecRequest) []commands.JobSpec {
	jobs := make([]commands.JobSpec, len(specs))
	for i, spec := range specs {
		jobs[i] = commands.JobSpec{CategoryID: spec.CategoryID, Tasks: spec.Tasks}
	}
	return jobs
}

func contactFromDomain(contact *catalog.Contact) *contactResponse {
	if contact == nil {
		return nil
	}
	return &contactResponse{Name: contact.Name(), Phone: contact.Phone()}
}

func orderFromView(view order.View, balance *int) orderResponse {
	response := orderResponse{
		ID:     view.ID.String(),
		Number: view.Number,
		Status: view.Status.String(),
		Address: addressResponse{
			Street: view.Address.Street(),
			City:   view.Address.City(),
			Region: view.Address.Region(),
		},
		Description:         view.Description,
		NeedEvacuator:       view.NeedEvacuator,
		NeedFieldTechnician: view.NeedFieldTechnician,
		CustomerContact:     contactFromDomain(view.CustomerContact),
		DriverContact:       contactFromDomain(view.DriverContact),
		Vehicles:            make([]vehicleResponse, len(view.Vehicles)),
		Cost:                view.Cost,
		Balance:             balance,
		CreatedAt:           view.CreatedAt,
		UpdatedAt:           view.UpdatedAt,
	}

	if view.MasterID != nil {
		masterID := view.MasterID.String()
		response.MasterID = &masterID
	}
	if view.ChatID != nil {
		chatID := view.ChatID.String()
		response.ChatID = &chatID
	}

	for i, vehicle := range view.Vehicles {
		response.Vehicles[i] = vehicleFromView(vehicle)
	}

	return response
}

func vehicleFromView(view order.VehicleView) vehicleResponse {
	response := vehicleResponse{
		ID:           view.AssignmentID.String(),
		Brand:        view.Vehicle.Brand(),
		Model:        view.Vehicle.Model(),
		VehicleType:  string(view.Vehicle.Type()),
		TrailerType:  view.Vehicle.TrailerType(),
		LicensePlate: view.LicensePlate,
		VIN:          view.VIN,
		Mileage:      view.Mileage,
		Categories:   make([]categoryResponse, len(view.Categories)),
	}

	for i, category := range view.Categories {
		tasks := make([]string, len(category.Tasks))
		for j, task := range category.Tasks {
			tasks[j] = task.Name()
		}
		response.Categories[i] = categoryResponse{
			CategoryID: category.Category.CategoryID(),
			Tasks:      tasks,
		}
	}

	return response
}

func summariesFromQuery(rows []queries.ListOrdersQueryResponse) []orderSummaryResponse {
	response := make([]orderSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = orderSummaryResponse{
			ID:        row.ID.String(),
			Number:    row.Number,
			Status:    row.Status.String(),
			Street:    row.Street,
			City:      row.City,
			Region:    row.Region,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return response
}

func messagesFromQuery(rows []queries.ListMessagesQueryResponse) []messageResponse {
	response := make([]messageResponse, len(rows))
	for i, row := range rows {
		response[i] = messageResponse{
			ID:         row.ID.String(),
			FromUserID: row.FromUserID.String(),
			ToUserID:   row.ToUserID.String(),
			FromRole:   row.FromRole.String(),
			Text:       row.Text,
			CreatedAt:  row.CreatedAt,
		}
	}
	return response
}
