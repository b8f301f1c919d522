package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_library "github.com/humanbelnik/moviematch/internal/usecase/library"
)

type Controller struct {
	uc *usecase_library.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_library.Usecase,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/swipe", c.swipe)
	router.GET("/liked/:user_id", c.liked)
	router.GET("/stats/:user_id", c.stats)
}

type SwipeRequestDTO struct {
	ContentID   int64  `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Action      string `json:"action" binding:"required,oneof=like dislike"`
	UserID      string `json:"user_id"`
}

// Swipe
// @Summary Record a like or dislike
// @Description A repeated swipe on the same content overwrites the previous action.
// @Tags Swipes
// @Accept json
// @Param request body SwipeRequestDTO true "Swipe"
// @Success 200 {object} http_common.MessageResponse
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /swipe [post]
func (c *Controller) swipe(ctx *gin.Context) {
	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Error("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	t, err := model.ParseContentType(req.ContentType)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown content type",
		})
		return
	}

	err = c.uc.RecordSwipe(ctx, model.SwipeDecision{
		ContentID:   req.ContentID,
		ContentType: t,
		Action:      model.Action(req.Action),
		UserID:      req.UserID,
	})
	if err != nil {
		c.logger.Error("failed to record swipe",
			slog.Int64("content_id", req.ContentID),
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()))
		if errors.Is(err, usecase_library.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid swipe",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, http_common.MessageResponse{
		Message: "Swipe recorded successfully",
	})
}

type LikedDTO struct {
	ID          string    `json:"id"`
	ContentID   int64     `json:"content_id"`
	ContentType string    `json:"content_type"`
	Action      string    `json:"action"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LikedResponseDTO struct {
	LikedContent []LikedDTO `json:"liked_content"`
}

// Liked
// @Summary Liked content of a user
// @Tags Swipes
// @Param user_id path string true "User id"
// @Success 200 {object} LikedResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /liked/{user_id} [get]
func (c *Controller) liked(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	swipes, err := c.uc.Liked(ctx, userID)
	if err != nil {
		c.logger.Error("failed to get liked content", slog.String("user_id", userID), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	resp := LikedResponseDTO{LikedContent: make([]LikedDTO, 0, len(swipes))}
	for _, s := range swipes {
		resp.LikedContent = append(resp.LikedContent, LikedDTO{
			ID:          s.ID.String(),
			ContentID:   s.ContentID,
			ContentType: string(s.ContentType),
			Action:      string(s.Action),
			UserID:      s.UserID,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

type StatsDTO struct {
	TotalSwipes    int `json:"total_swipes"`
	LikedCount     int `json:"liked_count"`
	DislikedCount  int `json:"disliked_count"`
	WatchingCount  int `json:"watching_count"`
	CompletedCount int `json:"completed_count"`
}

type StatsResponseDTO struct {
	Stats StatsDTO `json:"stats"`
}

// Stats
// @Summary Swipe and progress counters of a user
// @Tags Swipes
// @Param user_id path string true "User id"
// @Success 200 {object} StatsResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /stats/{user_id} [get]
func (c *Controller) stats(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	s, err := c.uc.Stats(ctx, userID)
	if err != nil {
		c.logger.Error("failed to get stats", slog.String("user_id", userID), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, StatsResponseDTO{
		Stats: StatsDTO{
			TotalSwipes:    s.TotalSwipes,
			LikedCount:     s.LikedCount,
			DislikedCount:  s.DislikedCount,
			WatchingCount:  s.WatchingCount,
			CompletedCount: s.CompletedCount,
		},
	})
}
