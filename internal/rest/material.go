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

type MaterialService interface {
	GetAllMaterials(ctx context.Context, page domain.Page, materialType string) (domain.PageResult[domain.Material], error)
	GetMaterialByID(ctx context.Context, id uint64) (domain.Material, error)
	CreateMaterial(ctx context.Context, material *domain.Material) (*domain.Material, error)
	UpdateMaterial(ctx context.Context, material *domain.Material) (*domain.Material, error)
	DeleteMaterial(ctx context.Context, id uint64) error
}

type MaterialHandler struct {
	materialService MaterialService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewMaterialHandler(materialService MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type MaterialRequest struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type"`
	Rarity      int    `json:"rarity" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r MaterialRequest) toDomain(id uint64) *domain.Material {
	return &domain.Material{
		ID:          id,
		Name:        r.Name,
		Type:        r.Type,
		Rarity:      r.Rarity,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (h *MaterialHandler) GetAllMaterials(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	materials, err := h.materialService.GetAllMaterials(ctx, page, c.QueryParam("type"))
	if err != nil {
		logger.Error("Failed to find all materials", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) GetMaterialByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid material id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	material, err := h.materialService.GetMaterialByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully find material by id",
		"material": material,
	})
}

func (h *MaterialHandler) CreateMaterial(c echo.Context) error {
	var req MaterialRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate material request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	material, err := h.materialService.CreateMaterial(ctx, req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create material", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Material successfully created",
		"material": material,
	})
}

func (h *MaterialHandler) UpdateMaterial(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid material id"})
	}

	var req MaterialRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate material request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	material, err := h.materialService.UpdateMaterial(ctx, req.toDomain(id))
	if err != nil {
		logger.Error("Failed to update material", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update material",
		"material": material,
	})
}

func (h *MaterialHandler) DeleteMaterial(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid material id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.materialService.DeleteMaterial(ctx, id); err != nil {
		logger.Error("Failed to delete material", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "material successfully deleted",
		"material_id": id,
	})
}
