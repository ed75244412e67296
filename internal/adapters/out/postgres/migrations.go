package postgres

import (
	"autoservice/internal/adapters/out/postgres/accountrepo"
	"autoservice/internal/adapters/out/postgres/catalogrepo"
	"autoservice/internal/adapters/out/postgres/chatrepo"
	"autoservice/internal/adapters/out/postgres/contractorrepo"
	"autoservice/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service persists to.
// Catalog tables go first so the composition tables can reference them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.JobCategoryDTO{},
		&catalogrepo.TaskDTO{},
		&catalogrepo.VehicleDTO{},
		&catalogrepo.ContactDTO{},
		&catalogrepo.AddressDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.VehicleDTO{},
		&orderrepo.JobDTO{},
		&orderrepo.HistoryDTO{},
		&accountrepo.AccountDTO{},
		&chatrepo.ChatDTO{},
		&chatrepo.MessageDTO{},
		&contractorrepo.ContractorDTO{},
	)
}
