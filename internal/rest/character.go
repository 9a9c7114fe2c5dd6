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

type CharacterService interface {
	GetAllCharacters(ctx context.Context, page domain.Page) (domain.PageResult[domain.Character], error)
	GetCharacterByID(ctx context.Context, id uint64) (domain.Character, error)
	CreateCharacter(ctx context.Context, character *domain.Character) (*domain.Character, error)
	UpdateCharacter(ctx context.Context, character *domain.Character) (*domain.Character, error)
	DeleteCharacter(ctx context.Context, id uint64) error
}

type CharacterHandler struct {
	characterService CharacterService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewCharacterHandler(characterService CharacterService) *CharacterHandler {
	return &CharacterHandler{
		characterService: characterService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type CharacterRequest struct {
	Name     string `json:"name" validate:"required"`
	Rarity   int    `json:"rarity" validate:"required"`
	Path     string `json:"path"`
	Element  string `json:"element"`
	ImageURL string `json:"image_url"`
}

func (r CharacterRequest) toDomain(id uint64) *domain.Character {
	return &domain.Character{
		ID:       id,
		Name:     r.Name,
		Rarity:   r.Rarity,
		Path:     r.Path,
		Element:  r.Element,
		ImageURL: r.ImageURL,
	}
}

func (h *CharacterHandler) GetAllCharacters(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	characters, err := h.characterService.GetAllCharacters(ctx, page)
	if err != nil {
		logger.Error("Failed to find all characters", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, characters)
}

func (h *CharacterHandler) GetCharacterByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid character id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	character, err := h.characterService.GetCharacterByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully find character by id",
		"character": character,
	})
}

func (h *CharacterHandler) CreateCharacter(c echo.Context) error {
	var req CharacterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate character request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	character, err := h.characterService.CreateCharacter(ctx, req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create character", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Character successfully created",
		"character": character,
	})
}

func (h *CharacterHandler) UpdateCharacter(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid character id"})
	}

	var req CharacterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate character request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	character, err := h.characterService.UpdateCharacter(ctx, req.toDomain(id))
	if err != nil {
		logger.Error("Failed to update character", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully update character",
		"character": character,
	})
}

func (h *CharacterHandler) DeleteCharacter(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid character id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.characterService.DeleteCharacter(ctx, id); err != nil {
		logger.Error("Failed to delete character", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "character successfully deleted",
		"character_id": id,
	})
}
