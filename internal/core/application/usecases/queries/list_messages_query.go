package queries

import (
	"errors"
	"time"

	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/pkg/guard"
)

var ErrListMessagesQueryIsNotConstructed = errors.New(
	"ListMessagesQuery must be created via NewListMessagesQuery constructor",
)

// ListMessagesQuery retrieves the chat history of an order for one viewer.
type ListMessagesQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListMessagesQuery creates a chat history query.
func NewListMessagesQuery(orderID, viewerID kernel.UUID) (ListMessagesQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return ListMessagesQuery{}, err
	}

	return ListMessagesQuery{
		orderID:  orderID,
		viewerID: viewerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

// OrderID returns the order whose chat is requested.
func (q ListMessagesQuery) OrderID() kernel.UUID { return q.orderID }

// ViewerID returns the acting user.
func (q ListMessagesQuery) ViewerID() kernel.UUID { return q.viewerID }

// ListMessagesQueryResponse is one chat message.
type ListMessagesQueryResponse struct {
	ID         kernel.UUID
	FromUserID kernel.UUID
	ToUserID   kernel.UUID
	FromRole   kernel.Role
	Text       string
	CreatedAt  time.Time
}
