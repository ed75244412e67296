package queries

import (
	"context"

	"autoservice/internal/core/ports"
)

// ListMessagesQueryHandler serves an order's chat history. Lack of access
// degrades to an empty list rather than an error: a viewer cannot probe
// whether a chat exists for an order they are not part of.
type ListMessagesQueryHandler struct {
	orderRepo ports.OrderRepository
	chatRepo  ports.ChatRepository
}

// NewListMessagesQueryHandler creates a handler for chat history reads.
func NewListMessagesQueryHandler(
	orderRepo ports.OrderRepository,
	chatRepo ports.ChatRepository,
) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{
		orderRepo: orderRepo,
		chatRepo:  chatRepo,
	}
}

// Handle executes the query. Orders without a chat yet and viewers who are
// not chat members both get an empty, non-nil list.
func (h ListMessagesQueryHandler) Handle(
	ctx context.Context,
	query ListMessagesQuery,
) ([]ListMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]ListMessagesQueryResponse, 0)

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if aggregate.ChatID() == nil {
		return responses, nil
	}

	conversation, err := h.chatRepo.Get(ctx, *aggregate.ChatID())
	if err != nil {
		return nil, err
	}
	if !conversation.IsMember(query.ViewerID()) {
		return responses, nil
	}

	messages, err := h.chatRepo.GetAllMessages(ctx, conversation.ID())
	if err != nil {
		return nil, err
	}

	for _, message := range messages {
		responses = append(responses, ListMessagesQueryResponse{
			ID:         message.ID(),
			FromUserID: message.FromUserID(),
			ToUserID:   message.ToUserID(),
			FromRole:   message.FromRole(),
			Text:       message.Text(),
			CreatedAt:  message.CreatedAt(),
		})
	}

	return responses, nil
}
