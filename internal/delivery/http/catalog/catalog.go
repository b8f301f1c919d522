package http_catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_discover "github.com/humanbelnik/moviematch/internal/usecase/discover"
)

type Controller struct {
	uc *usecase_discover.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_discover.Usecase,
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
	router.GET("/", c.health)
	router.GET("/genres/:content_type", c.genres)
	router.POST("/discover", c.discover)
}

// Health
// @Summary API liveness
// @Tags Catalog
// @Success 200 {object} http_common.MessageResponse
// @Router / [get]
func (c *Controller) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, http_common.MessageResponse{
		Message: "Movie Discovery API is running",
	})
}

type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenresResponseDTO struct {
	Genres []GenreDTO `json:"genres"`
}

// Genres
// @Summary Genre list of a content type
// @Tags Catalog
// @Param content_type path string true "movies, series or tv"
// @Success 200 {object} GenresResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Unknown content type"
// @Failure 502 {object} http_common.ErrorResponse "TMDB unavailable"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /genres/{content_type} [get]
func (c *Controller) genres(ctx *gin.Context) {
	raw := ctx.Param("content_type")
	t, err := model.ParseContentType(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "content type must be movies or series",
		})
		return
	}

	genres, err := c.uc.Genres(ctx, t)
	if err != nil {
		c.writeError(ctx, "failed to get genres", err, slog.String("content_type", raw))
		return
	}

	resp := GenresResponseDTO{Genres: make([]GenreDTO, 0, len(genres))}
	for _, g := range genres {
		resp.Genres = append(resp.Genres, GenreDTO{ID: g.ID, Name: g.Name})
	}
	ctx.JSON(http.StatusOK, resp)
}

type DiscoverRequestDTO struct {
	ContentType string `json:"content_type" binding:"required"`
	GenreIDs    []int  `json:"genre_ids"`
	Page        int    `json:"page" binding:"min=0"`
	SortBy      string `json:"sort_by"`
}

type ContentDTO struct {
	ID          int64   `json:"id"`
	ContentType string  `json:"content_type"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	PosterURL   string  `json:"poster_url"`
	BackdropURL string  `json:"backdrop_url"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type DiscoverResponseDTO struct {
	Page         int          `json:"page"`
	Results      []ContentDTO `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// Discover
// @Summary One page of discoverable content
// @Description Pages start at 1. An empty genre list means unfiltered.
// @Tags Catalog
// @Accept json
// @Param request body DiscoverRequestDTO true "Query"
// @Success 200 {object} DiscoverResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 502 {object} http_common.ErrorResponse "TMDB unavailable"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /discover [post]
func (c *Controller) discover(ctx *gin.Context) {
	var req DiscoverRequestDTO
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
			Message: "content_type must be 'movie' or 'tv'",
		})
		return
	}

	page, err := c.uc.Discover(ctx, model.DiscoverQuery{
		Type:   t,
		Genres: model.NewGenreFilter(req.GenreIDs...),
		Page:   req.Page,
		SortBy: req.SortBy,
	})
	if err != nil {
		c.writeError(ctx, "failed to discover content", err, slog.Int("page", req.Page))
		return
	}

	resp := DiscoverResponseDTO{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Results:      make([]ContentDTO, 0, len(page.Results)),
	}
	for _, item := range page.Results {
		resp.Results = append(resp.Results, ContentDTO{
			ID:          item.ID,
			ContentType: string(item.Type),
			Title:       item.DisplayTitle,
			ReleaseYear: item.ReleaseYear,
			PosterURL:   item.PosterURL,
			BackdropURL: item.BackdropURL,
			VoteAverage: item.VoteAverage,
			Overview:    item.Overview,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) writeError(ctx *gin.Context, msg string, err error, attrs ...any) {
	c.logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)

	switch {
	case errors.Is(err, usecase_discover.ErrInvalidContentType):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown content type",
		})
	case errors.Is(err, usecase_discover.ErrCatalogUnavailable):
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "catalog unavailable",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
