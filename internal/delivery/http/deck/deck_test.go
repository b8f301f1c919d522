package http_deck

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	ws_deck "github.com/humanbelnik/moviematch/internal/delivery/ws/deck"
	"github.com/humanbelnik/moviematch/internal/usecase/session/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type DeckControllerSuite struct {
	suite.Suite

	hub    *ws_deck.Hub
	engine *gin.Engine
}

func (s *DeckControllerSuite) BeforeEach(t provider.T) {
	gin.SetMode(gin.TestMode)
	s.hub = ws_deck.New(mocks.NewBackend(t), nil)
	s.engine = gin.New()
	New(s.hub).RegisterRoutes(s.engine.Group("/api"))
}

func (s *DeckControllerSuite) AfterEach(t provider.T) {
	s.hub.Close()
}

func (s *DeckControllerSuite) TestRoutes(t provider.T) {
	t.Run("Should refuse plain http on the websocket route", func(t provider.T) {
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deck/ws", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should report no live sessions", func(t provider.T) {
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deck/sessions", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"active":0}`, w.Body.String())
	})
}

func TestDeckControllerSuite(t *testing.T) {
	suite.RunSuite(t, new(DeckControllerSuite))
}
