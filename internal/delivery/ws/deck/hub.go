package ws_deck

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_session "github.com/humanbelnik/moviematch/internal/usecase/session"
)

// Hub keeps track of live deck sessions, one per connection.
type Hub struct {
	backend usecase_session.Backend
	opts    []usecase_session.Option

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client

	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger
}

func New(backend usecase_session.Backend, logger *slog.Logger, opts ...usecase_session.Option) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		backend: backend,
		opts:    opts,
		clients: make(map[uuid.UUID]*Client),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.ID] = c
	infra_metrics.DeckSessions.Inc()
	h.logger.Info("client registered", slog.String("session_id", c.ID.String()))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		infra_metrics.DeckSessions.Dec()
	}
	h.logger.Info("client unregistered", slog.String("session_id", c.ID.String()))
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops every session. Serve calls in progress return shortly after.
func (h *Hub) Close() {
	h.cancel()
}

// Serve runs a deck session over conn until the browser leaves or the hub
// is closed.
func (h *Hub) Serve(conn *websocket.Conn, userID model.UserID) {
	c := newClient(conn, h.logger)

	opts := append([]usecase_session.Option{}, h.opts...)
	opts = append(opts, usecase_session.WithLogger(c.logger))
	if userID != "" {
		opts = append(opts, usecase_session.WithUserID(userID))
	}
	c.session = usecase_session.New(h.backend, c, opts...)

	h.register(c)
	defer h.remove(c)

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	readDone := make(chan struct{})
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		c.writePump()
	}()
	go func() {
		defer close(readDone)
		c.readPump(cancel)
	}()

	if err := c.session.Run(ctx); err != nil {
		c.logger.Error("deck session stopped", slog.String("error", err.Error()))
	}

	// The reader may still enqueue errors; send is closed only once it is gone.
	_ = conn.SetReadDeadline(time.Now())
	<-readDone
	close(c.send)
	<-writeDone
}
