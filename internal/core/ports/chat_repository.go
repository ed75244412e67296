package ports

import (
	"context"

	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"
)

// ChatRepository defines the persistence contract for chats and their
// messages.
type ChatRepository interface {
	// Add persists a new chat.
	Add(ctx context.Context, aggregate *chat.Chat) error

	// Get retrieves a chat by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*chat.Chat, error)

	// AddMessage appends a message to a chat.
	AddMessage(ctx context.Context, message chat.Message) error

	// GetAllMessages retrieves a chat's messages ordered by creation time.
	GetAllMessages(ctx context.Context, chatID kernel.UUID) ([]chat.Message, error)
}
