package http_progress

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
	router.POST("/progress", c.update)
	router.GET("/progress/:user_id", c.list)
}

type ProgressRequestDTO struct {
	ContentID   int64  `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=watching completed want_to_watch"`
	Progress    int    `json:"progress" binding:"min=0"`
	UserID      string `json:"user_id"`
}

// Update
// @Summary Update watching progress
// @Tags Progress
// @Accept json
// @Param request body ProgressRequestDTO true "Progress"
// @Success 200 {object} http_common.MessageResponse
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /progress [post]
func (c *Controller) update(ctx *gin.Context) {
	var req ProgressRequestDTO
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

	err = c.uc.UpdateProgress(ctx, model.Progress{
		ContentID:   req.ContentID,
		ContentType: t,
		Status:      model.ProgressStatus(req.Status),
		Progress:    req.Progress,
		UserID:      req.UserID,
	})
	if err != nil {
		c.logger.Error("failed to update progress",
			slog.Int64("content_id", req.ContentID),
			slog.String("user_id", req.UserID),
			slog.String("error", err.Error()))
		if errors.Is(err, usecase_library.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid progress",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, http_common.MessageResponse{
		Message: "Progress updated successfully",
	})
}

type ProgressDTO struct {
	ID          string    `json:"id"`
	ContentID   int64     `json:"content_id"`
	ContentType string    `json:"content_type"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	UserID      string    `json:"user_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProgressResponseDTO struct {
	Progress []ProgressDTO `json:"progress"`
}

// List
// @Summary Watching progress of a user
// @Tags Progress
// @Param user_id path string true "User id"
// @Success 200 {object} ProgressResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /progress/{user_id} [get]
func (c *Controller) list(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	list, err := c.uc.Progress(ctx, userID)
	if err != nil {
		c.logger.Error("failed to get progress", slog.String("user_id", userID), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	resp := ProgressResponseDTO{Progress: make([]ProgressDTO, 0, len(list))}
	for _, p := range list {
		resp.Progress = append(resp.Progress, ProgressDTO{
			ID:          p.ID.String(),
			ContentID:   p.ContentID,
			ContentType: string(p.ContentType),
			Status:      string(p.Status),
			Progress:    p.Progress,
			UserID:      p.UserID,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}
