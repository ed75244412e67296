package ws_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"autoservice/internal/adapters/in/ws"
	"autoservice/internal/core/domain/model/catalog"
	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepository struct {
	aggregate *order.Order
}

func (r *stubOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return r.aggregate, nil
}

func (r *stubOrderRepository) Add(_ context.Context, _ *order.Order) error {
	panic("not implemented in stub")
}

func (r *stubOrderRepository) Update(_ context.Context, _ *order.Order) error {
	panic("not implemented in stub")
}

func (r *stubOrderRepository) GetForUpdate(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	panic("not implemented in stub")
}

func (r *stubOrderRepository) AddHistory(_ context.Context, _ order.HistoryEntry) error {
	panic("not implemented in stub")
}

func (r *stubOrderRepository) GetAllAnonymousByPhone(_ context.Context, _ string) ([]*order.Order, error) {
	panic("not implemented in stub")
}

func (r *stubOrderRepository) GetAllCreatedBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	panic("not implemented in stub")
}

type stubChatRepository struct {
	conversation *chat.Chat

	mu       sync.Mutex
	messages []chat.Message
}

func (r *stubChatRepository) Get(_ context.Context, _ kernel.UUID) (*chat.Chat, error) {
	return r.conversation, nil
}

func (r *stubChatRepository) AddMessage(_ context.Context, message chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *stubChatRepository) stored() []chat.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]chat.Message(nil), r.messages...)
}

func (r *stubChatRepository) Add(_ context.Context, _ *chat.Chat) error {
	panic("not implemented in stub")
}

func (r *stubChatRepository) GetAllMessages(_ context.Context, _ kernel.UUID) ([]chat.Message, error) {
	panic("not implemented in stub")
}

// chatFixture is an accepted order with a provisioned chat between its
// customer and contractor, served over a real websocket endpoint.
type chatFixture struct {
	customerID kernel.UUID
	masterID   kernel.UUID
	chatRepo   *stubChatRepository
	url        string
}

func newChatFixture(t *testing.T) chatFixture {
	t.Helper()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	customerID := kernel.NewUUID()
	masterID := kernel.NewUUID()
	address, err := catalog.NewAddress(kernel.NewUUID(), "Lenina 1", "Tver", "Tver Oblast")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), &customerID, nil, nil, address, "", false, false, now)
	require.NoError(t, err)
	require.NoError(t, aggregate.Accept(masterID, now))

	conversation, err := chat.NewChat(kernel.NewUUID(), customerID, masterID, now)
	require.NoError(t, err)
	require.NoError(t, aggregate.AttachChat(conversation.ID()))

	chatRepo := &stubChatRepository{conversation: conversation}
	logger := slog.New(slog.DiscardHandler)
	server := ws.NewServer(
		ws.NewHub(logger), &stubOrderRepository{aggregate: aggregate}, chatRepo, logger)

	e := echo.New()
	server.RegisterRoutes(e)
	ts := httptest.NewServer(e)
	t.Cleanup(ts.Close)

	return chatFixture{
		customerID: customerID,
		masterID:   masterID,
		chatRepo:   chatRepo,
		url: "ws" + strings.TrimPrefix(ts.URL, "http") +
			"/api/v1/orders/" + aggregate.ID().String() + "/chat/ws",
	}
}

func (f chatFixture) dial(t *testing.T, userID kernel.UUID, role kernel.Role) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("X-User-Id", userID.String())
	header.Set("X-User-Role", role.String())

	conn, _, err := websocket.DefaultDialer.Dial(f.url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestServeChat_RelaysAndPersists(t *testing.T) {
	fixture := newChatFixture(t)
	customer := fixture.dial(t, fixture.customerID, kernel.RoleCustomer)
	master := fixture.dial(t, fixture.masterID, kernel.RoleContractor)

	require.NoError(t, customer.WriteJSON(map[string]string{"text": "when can you start?"}))

	var relayed struct {
		FromUserID string `json:"from_user_id"`
		ToUserID   string `json:"to_user_id"`
		Text       string `json:"text"`
	}
	require.NoError(t, master.ReadJSON(&relayed))
	assert.Equal(t, "when can you start?", relayed.Text)
	assert.Equal(t, fixture.customerID.String(), relayed.FromUserID)
	assert.Equal(t, fixture.masterID.String(), relayed.ToUserID)

	stored := fixture.chatRepo.stored()
	require.Len(t, stored, 1)
	assert.Equal(t, "when can you start?", stored[0].Text())
	assert.Equal(t, kernel.RoleCustomer, stored[0].FromRole())
}

func TestServeChat_OversizedMessageClosesConnection(t *testing.T) {
	fixture := newChatFixture(t)
	customer := fixture.dial(t, fixture.customerID, kernel.RoleCustomer)

	payload := `{"text":"` + strings.Repeat("a", 128*1024) + `"}`
	require.NoError(t, customer.WriteMessage(websocket.TextMessage, []byte(payload)))

	_, _, err := customer.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig),
		"the relay must refuse messages over the read limit, got: %v", err)

	assert.Empty(t, fixture.chatRepo.stored())
}

func TestServeChat_NonMemberIsRejected(t *testing.T) {
	fixture := newChatFixture(t)
	header := http.Header{}
	header.Set("X-User-Id", kernel.NewUUID().String())
	header.Set("X-User-Role", kernel.RoleContractor.String())

	conn, resp, err := websocket.DefaultDialer.Dial(fixture.url, header)
	if conn != nil {
		_ = conn.Close()
	}
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
