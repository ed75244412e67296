// Package chatrepo persists chats and their messages.
package chatrepo

import (
	"time"

	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChatDTO represents the database structure for chats. Membership is the
// pair of participant columns; it never changes after creation.
type ChatDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	MasterID   uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for chats.
func (ChatDTO) TableName() string {
	return "chats"
}

// MessageDTO represents one persisted chat message.
type MessageDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID     uuid.UUID `gorm:"type:uuid;index"`
	FromUserID uuid.UUID `gorm:"type:uuid"`
	ToUserID   uuid.UUID `gorm:"type:uuid"`
	FromRole   string
	Text       string
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for chat messages.
func (MessageDTO) TableName() string {
	return "chat_messages"
}

func fromDomain(aggregate *chat.Chat) ChatDTO {
	return ChatDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		MasterID:   aggregate.MasterID().Bytes(),
		CreatedAt:  aggregate.CreatedAt(),
	}
}

func toDomain(dto ChatDTO) (*chat.Chat, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	masterID, err := kernel.UUIDFromBytes(dto.MasterID[:])
	if err != nil {
		return nil, err
	}

	return chat.RestoreChat(id, customerID, masterID, dto.CreatedAt)
}

func messageFromDomain(message chat.Message) MessageDTO {
	return MessageDTO{
		ID:         message.ID().Bytes(),
		ChatID:     message.ChatID().Bytes(),
		FromUserID: message.FromUserID().Bytes(),
		ToUserID:   message.ToUserID().Bytes(),
		FromRole:   message.FromRole().String(),
		Text:       message.Text(),
		CreatedAt:  message.CreatedAt(),
	}
}

func messageToDomain(dto MessageDTO) (chat.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return chat.Message{}, err
	}
	chatID, err := kernel.UUIDFromBytes(dto.ChatID[:])
	if err != nil {
		return chat.Message{}, err
	}
	fromUserID, err := kernel.UUIDFromBytes(dto.FromUserID[:])
	if err != nil {
		return chat.Message{}, err
	}
	toUserID, err := kernel.UUIDFromBytes(dto.ToUserID[:])
	if err != nil {
		return chat.Message{}, err
	}
	fromRole, err := kernel.RoleFromString(dto.FromRole)
	if err != nil {
		return chat.Message{}, err
	}

	return chat.NewMessage(id, chatID, fromUserID, toUserID, fromRole, dto.Text, dto.CreatedAt)
}
