package queries_test

import (
	"testing"
	"time"

	"autoservice/internal/core/application/usecases/queries"
	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMessagesQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	newConversation := func(t *testing.T, customerID, masterID kernel.UUID) *chat.Chat {
		t.Helper()
		conversation, err := chat.NewChat(kernel.NewUUID(), customerID, masterID, time.Now())
		require.NoError(t, err)
		return conversation
	}

	t.Run("member reads the history in order", func(t *testing.T) {
		customerID := kernel.NewUUID()
		aggregate := testOrder(t, &customerID)
		masterID := kernel.NewUUID()
		require.NoError(t, aggregate.Accept(masterID, time.Now()))
		conversation := newConversation(t, customerID, masterID)
		require.NoError(t, aggregate.AttachChat(conversation.ID()))

		first, err := chat.NewMessage(
			kernel.NewUUID(), conversation.ID(), customerID, masterID,
			kernel.RoleCustomer, "when can you start?", time.Now())
		require.NoError(t, err)
		second, err := chat.NewMessage(
			kernel.NewUUID(), conversation.ID(), masterID, customerID,
			kernel.RoleContractor, "tomorrow morning", time.Now().Add(time.Minute))
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
		chatRepo := new(MockChatRepository)
		chatRepo.On("Get", ctx, conversation.ID()).Return(conversation, nil).Once()
		chatRepo.On("GetAllMessages", ctx, conversation.ID()).
			Return([]chat.Message{first, second}, nil).Once()

		query, err := queries.NewListMessagesQuery(aggregate.ID(), customerID)
		require.NoError(t, err)

		h := queries.NewListMessagesQueryHandler(orderRepo, chatRepo)
		responses, err := h.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, "when can you start?", responses[0].Text)
		assert.Equal(t, kernel.RoleContractor, responses[1].FromRole)
		chatRepo.AssertExpectations(t)
	})

	t.Run("non member gets an empty list, not an error", func(t *testing.T) {
		customerID := kernel.NewUUID()
		aggregate := testOrder(t, &customerID)
		masterID := kernel.NewUUID()
		require.NoError(t, aggregate.Accept(masterID, time.Now()))
		conversation := newConversation(t, customerID, masterID)
		require.NoError(t, aggregate.AttachChat(conversation.ID()))

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
		chatRepo := new(MockChatRepository)
		chatRepo.On("Get", ctx, conversation.ID()).Return(conversation, nil).Once()

		query, err := queries.NewListMessagesQuery(aggregate.ID(), kernel.NewUUID())
		require.NoError(t, err)

		h := queries.NewListMessagesQueryHandler(orderRepo, chatRepo)
		responses, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, responses)
		assert.Empty(t, responses)
		chatRepo.AssertNotCalled(t, "GetAllMessages", ctx, conversation.ID())
	})

	t.Run("order without a chat yet", func(t *testing.T) {
		customerID := kernel.NewUUID()
		aggregate := testOrder(t, &customerID)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

		query, err := queries.NewListMessagesQuery(aggregate.ID(), customerID)
		require.NoError(t, err)

		h := queries.NewListMessagesQueryHandler(orderRepo, new(MockChatRepository))
		responses, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, responses)
		assert.Empty(t, responses)
	})
}
