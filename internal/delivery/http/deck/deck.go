package http_deck

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	ws_deck "github.com/humanbelnik/moviematch/internal/delivery/ws/deck"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Controller struct {
	hub *ws_deck.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(hub *ws_deck.Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	deck := router.Group("/deck")
	deck.GET("/ws", c.deckWS)
	deck.GET("/sessions", c.sessions)
}

// DeckWS
// @Summary Swipe deck session
// @Description Upgrades to a websocket. The client sends pointer and filter
// @Description inputs, the server streams card, drag and stats events.
// @Tags Deck
// @Param user_id query string false "User id, the configured one by default"
// @Success 101 "Switching protocols"
// @Failure 400 {object} http_common.ErrorResponse "Not a websocket request"
// @Router /deck/ws [get]
func (c *Controller) deckWS(ctx *gin.Context) {
	if !websocket.IsWebSocketUpgrade(ctx.Request) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "websocket upgrade required",
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade connection", slog.String("error", err.Error()))
		return
	}

	c.hub.Serve(conn, ctx.Query("user_id"))
}

type SessionsResponseDTO struct {
	Active int `json:"active"`
}

// Sessions
// @Summary Number of live deck sessions
// @Tags Deck
// @Success 200 {object} SessionsResponseDTO
// @Router /deck/sessions [get]
func (c *Controller) sessions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, SessionsResponseDTO{Active: c.hub.Count()})
}
