package ws_deck

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	usecase_session "github.com/humanbelnik/moviematch/internal/usecase/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client owns one connection and the deck session behind it.
type Client struct {
	ID      uuid.UUID
	conn    *websocket.Conn
	send    chan []byte
	session *usecase_session.Session
	logger  *slog.Logger
}

func newClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	id := uuid.New()
	return &Client{
		ID:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger.With(slog.String("session_id", id.String())),
	}
}

// Publish is called on the session goroutine. A slow browser loses frames
// instead of stalling the session.
func (c *Client) Publish(e usecase_session.Event) {
	c.enqueue(toEvent(e))
}

func (c *Client) enqueue(e Event) {
	raw, err := json.Marshal(e)
	if err != nil {
		c.logger.Error("failed to encode event", slog.String("type", e.Type), slog.String("error", err.Error()))
		return
	}
	select {
	case c.send <- raw:
	default:
		c.logger.Warn("send buffer full, event dropped", slog.String("type", e.Type))
	}
}

func (c *Client) readPump(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", slog.String("error", err.Error()))
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("unexpected websocket close", slog.String("error", err.Error()))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.enqueue(Event{Type: EventError, Payload: errorPayload{Message: "invalid message format"}})
			continue
		}

		forwarded, err := dispatch(c.session, msg)
		if err != nil {
			c.logger.Warn("rejected client message", slog.String("type", msg.Type), slog.String("error", err.Error()))
			c.enqueue(Event{Type: EventError, Payload: errorPayload{Message: err.Error()}})
			if errors.Is(err, usecase_session.ErrClosed) {
				return
			}
			continue
		}
		if !forwarded {
			c.enqueue(Event{Type: EventPong})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				c.logger.Warn("failed to write event", slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
