package ws

import (
	"log/slog"
	"net/http"
	"time"

	"autoservice/internal/core/domain/model/chat"
	"autoservice/internal/core/domain/model/kernel"
	"autoservice/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	pongWait       = 30 * time.Second
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type inboundMessage struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	FromRole   string    `json:"from_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Server upgrades chat connections and relays messages between the two
// chat members. Every message is persisted before delivery.
type Server struct {
	hub       *Hub
	orderRepo ports.OrderRepository
	chatRepo  ports.ChatRepository
	logger    *slog.Logger
}

// NewServer creates the chat relay server.
func NewServer(
	hub *Hub,
	orderRepo ports.OrderRepository,
	chatRepo ports.ChatRepository,
	logger *slog.Logger,
) *Server {
	return &Server{
		hub:       hub,
		orderRepo: orderRepo,
		chatRepo:  chatRepo,
		logger:    logger.With("component", "ws_server"),
	}
}

// RegisterRoutes mounts the chat endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/orders/:orderId/chat/ws", s.ServeChat)
}

// ServeChat handles GET /api/v1/orders/{orderId}/chat/ws - upgrades the
// connection and relays messages until the client disconnects. Only the
// two chat members may connect.
func (s *Server) ServeChat(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return ctx.NoContent(http.StatusUnauthorized)
	}
	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return ctx.NoContent(http.StatusUnauthorized)
	}

	requestCtx := ctx.Request().Context()

	aggregate, err := s.orderRepo.Get(requestCtx, orderID)
	if err != nil {
		return ctx.NoContent(http.StatusNotFound)
	}
	chatID := aggregate.ChatID()
	if chatID == nil {
		return ctx.NoContent(http.StatusNotFound)
	}

	conversation, err := s.chatRepo.Get(requestCtx, *chatID)
	if err != nil {
		return ctx.NoContent(http.StatusNotFound)
	}
	if !conversation.IsMember(userID) {
		return ctx.NoContent(http.StatusForbidden)
	}
	peerID, err := conversation.PeerOf(userID)
	if err != nil {
		return ctx.NoContent(http.StatusForbidden)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		s.logger.Warn("connection upgrade failed", "user_id", userID.String(), "error", err)
		return nil
	}

	s.hub.Register(userID, conn)
	defer func() {
		s.hub.Unregister(userID, conn)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var incoming inboundMessage
		if err = conn.ReadJSON(&incoming); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("chat connection dropped",
					"user_id", userID.String(), "error", err)
			}
			return nil
		}

		message, msgErr := chat.NewMessage(
			kernel.NewUUID(), conversation.ID(), userID, peerID, role,
			incoming.Text, time.Now())
		if msgErr != nil {
			continue
		}

		if err = s.chatRepo.AddMessage(requestCtx, message); err != nil {
			s.logger.Error("message persistence failed",
				"chat_id", conversation.ID().String(), "error", err)
			continue
		}

		s.hub.Send(peerID, outboundMessage{
			ID:         message.ID().String(),
			FromUserID: message.FromUserID().String(),
			ToUserID:   message.ToUserID().String(),
			FromRole:   message.FromRole().String(),
			Text:       message.Text(),
			CreatedAt:  message.CreatedAt(),
		})
	}
}
