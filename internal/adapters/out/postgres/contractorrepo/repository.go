// Package contractorrepo provides read access to the contractor directory.
// Identity and credentials live with the auth service; this directory holds
// what order listing and notification fan-out need: the working region and
// the Telegram chat to notify.
package contractorrepo

import (
	"context"
	"errors"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/ports"
	"autoservice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractorDTO represents the database structure for directory entries.
type ContractorDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Phone          string
	Region         string `gorm:"index"`
	City           string
	TelegramChatID int64
}

// TableName specifies the database table name for contractors.
func (ContractorDTO) TableName() string {
	return "contractors"
}

// GormContractorRepository implements ContractorRepository using GORM.
type GormContractorRepository struct {
	db *gorm.DB
}

// NewGormContractorRepository creates a new GORM contractor repository.
func NewGormContractorRepository(db *gorm.DB) *GormContractorRepository {
	return &GormContractorRepository{db: db}
}

// Get retrieves one directory entry.
func (r *GormContractorRepository) Get(ctx context.Context, id kernel.UUID) (*ports.Contractor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ContractorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contractor", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRegion retrieves the contractors working a region. A non-empty
// city narrows the match: that is how city-scoped regions fan out.
func (r *GormContractorRepository) GetAllByRegion(
	ctx context.Context,
	region, city string,
) ([]*ports.Contractor, error) {
	db := r.db.WithContext(ctx).Where("region = ?", region)
	if city != "" {
		db = db.Where("city = ?", city)
	}

	var dtos []ContractorDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, err
	}

	contractors := make([]*ports.Contractor, 0, len(dtos))
	for _, dto := range dtos {
		contractor, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, contractor)
	}

	return contractors, nil
}

func toDomain(dto ContractorDTO) (*ports.Contractor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &ports.Contractor{
		ID:             id,
		Name:           dto.Name,
		Phone:          dto.Phone,
		Region:         dto.Region,
		City:           dto.City,
		TelegramChatID: dto.TelegramChatID,
	}, nil
}
