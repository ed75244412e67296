package ws_test

import (
	"log/slog"
	"testing"

	"autoservice/internal/adapters/in/ws"
	"autoservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	written []any
	closed  bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.written = append(c.written, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestHub(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("delivers to a registered user", func(t *testing.T) {
		hub := ws.NewHub(logger)
		userID := kernel.NewUUID()
		conn := &fakeConn{}

		hub.Register(userID, conn)
		hub.Send(userID, "hello")

		assert.Equal(t, []any{"hello"}, conn.written)
	})

	t.Run("sending to an offline user is a no-op", func(t *testing.T) {
		hub := ws.NewHub(logger)
		hub.Send(kernel.NewUUID(), "hello")
	})

	t.Run("reconnect replaces and closes the previous connection", func(t *testing.T) {
		hub := ws.NewHub(logger)
		userID := kernel.NewUUID()
		first := &fakeConn{}
		second := &fakeConn{}

		hub.Register(userID, first)
		hub.Register(userID, second)
		hub.Send(userID, "hello")

		assert.True(t, first.closed)
		assert.Empty(t, first.written)
		assert.Equal(t, []any{"hello"}, second.written)
	})

	t.Run("a stale read loop cannot evict a reconnect", func(t *testing.T) {
		hub := ws.NewHub(logger)
		userID := kernel.NewUUID()
		first := &fakeConn{}
		second := &fakeConn{}

		hub.Register(userID, first)
		hub.Register(userID, second)
		hub.Unregister(userID, first) // the replaced loop shuts down late
		hub.Send(userID, "hello")

		assert.Equal(t, []any{"hello"}, second.written)
	})

	t.Run("unregister removes the current connection", func(t *testing.T) {
		hub := ws.NewHub(logger)
		userID := kernel.NewUUID()
		conn := &fakeConn{}

		hub.Register(userID, conn)
		hub.Unregister(userID, conn)
		hub.Send(userID, "hello")

		assert.Empty(t, conn.written)
	})
}
