package rest

import (
	"context"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RelicService interface {
	GetAllRelics(ctx context.Context, page domain.Page, slot string) (domain.PageResult[domain.Relic], error)
	GetRelicByID(ctx context.Context, id uint64) (domain.Relic, error)
	CreateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error)
	UpdateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error)
	DeleteRelic(ctx context.Context, id uint64) error
}

type RelicHandler struct {
	relicService RelicService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewRelicHandler(relicService RelicService) *RelicHandler {
	return &RelicHandler{
		relicService: relicService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

// RelicRequest carries no slot: it is derived from the name.
type RelicRequest struct {
	Name     string `json:"name" validate:"required"`
	SetName  string `json:"set_name"`
	Rarity   int    `json:"rarity" validate:"required"`
	ImageURL string `json:"image_url"`
}

func (r RelicRequest) toDomain(id uint64) *domain.Relic {
	return &domain.Relic{
		ID:       id,
		Name:     r.Name,
		SetName:  r.SetName,
		Rarity:   r.Rarity,
		ImageURL: r.ImageURL,
	}
}

func (h *RelicHandler) GetAllRelics(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relics, err := h.relicService.GetAllRelics(ctx, page, c.QueryParam("slot"))
	if err != nil {
		logger.Error("Failed to find all relics", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, relics)
}

func (h *RelicHandler) GetRelicByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid relic id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relic, err := h.relicService.GetRelicByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find relic by id",
		"relic":   relic,
	})
}

func (h *RelicHandler) CreateRelic(c echo.Context) error {
	var req RelicRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate relic request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relic, err := h.relicService.CreateRelic(ctx, req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create relic", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Relic successfully created",
		"relic":   relic,
	})
}

func (h *RelicHandler) UpdateRelic(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid relic id"})
	}

	var req RelicRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate relic request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relic, err := h.relicService.UpdateRelic(ctx, req.toDomain(id))
	if err != nil {
		logger.Error("Failed to update relic", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update relic",
		"relic":   relic,
	})
}

func (h *RelicHandler) DeleteRelic(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid relic id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.relicService.DeleteRelic(ctx, id); err != nil {
		logger.Error("Failed to delete relic", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "relic successfully deleted",
		"relic_id": id,
	})
}
