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

type LightConeService interface {
	GetAllLightCones(ctx context.Context, page domain.Page) (domain.PageResult[domain.LightCone], error)
	GetLightConeByID(ctx context.Context, id uint64) (domain.LightCone, error)
	CreateLightCone(ctx context.Context, lightCone *domain.LightCone) (*domain.LightCone, error)
	UpdateLightCone(ctx context.Context, lightCone *domain.LightCone) (*domain.LightCone, error)
	DeleteLightCone(ctx context.Context, id uint64) error
}

type LightConeHandler struct {
	lightConeService LightConeService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewLightConeHandler(lightConeService LightConeService) *LightConeHandler {
	return &LightConeHandler{
		lightConeService: lightConeService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type LightConeRequest struct {
	Name     string `json:"name" validate:"required"`
	Rarity   int    `json:"rarity" validate:"required"`
	Path     string `json:"path"`
	ImageURL string `json:"image_url"`
}

func (r LightConeRequest) toDomain(id uint64) *domain.LightCone {
	return &domain.LightCone{
		ID:       id,
		Name:     r.Name,
		Rarity:   r.Rarity,
		Path:     r.Path,
		ImageURL: r.ImageURL,
	}
}

func (h *LightConeHandler) GetAllLightCones(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCones, err := h.lightConeService.GetAllLightCones(ctx, page)
	if err != nil {
		logger.Error("Failed to find all light cones", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, lightCones)
}

func (h *LightConeHandler) GetLightConeByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid light cone id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCone, err := h.lightConeService.GetLightConeByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully find light cone by id",
		"light_cone": lightCone,
	})
}

func (h *LightConeHandler) CreateLightCone(c echo.Context) error {
	var req LightConeRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate light cone request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCone, err := h.lightConeService.CreateLightCone(ctx, req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create light cone", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "LightCone successfully created",
		"light_cone": lightCone,
	})
}

func (h *LightConeHandler) UpdateLightCone(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid light cone id"})
	}

	var req LightConeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate light cone request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCone, err := h.lightConeService.UpdateLightCone(ctx, req.toDomain(id))
	if err != nil {
		logger.Error("Failed to update light cone", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully update light cone",
		"light_cone": lightCone,
	})
}

func (h *LightConeHandler) DeleteLightCone(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid light cone id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.lightConeService.DeleteLightCone(ctx, id); err != nil {
		logger.Error("Failed to delete light cone", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "light cone successfully deleted",
		"light_cone_id": id,
	})
}
