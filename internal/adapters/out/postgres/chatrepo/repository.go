package chatrepo

import (
	"context"
	"errors"

	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChatRepository implements ChatRepository using GORM.
type GormChatRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChatRepository creates a new GORM chat repository.
func NewGormChatRepository(db *gorm.DB, tracker aggregateTracker) *GormChatRepository {
	return &GormChatRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new chat.
func (r *GormChatRepository) Add(ctx context.Context, aggregate *chat.Chat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a chat by ID.
func (r *GormChatRepository) Get(ctx context.Context, id kernel.UUID) (*chat.Chat, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ChatDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddMessage appends a message to a chat. Messages are immutable.
func (r *GormChatRepository) AddMessage(ctx context.Context, message chat.Message) error {
	dto := messageFromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllMessages retrieves a chat's messages ordered by creation time.
func (r *GormChatRepository) GetAllMessages(ctx context.Context, chatID kernel.UUID) ([]chat.Message, error) {
	if err := chatID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, msgErr := messageToDomain(dto)
		if msgErr != nil {
			return nil, msgErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}
