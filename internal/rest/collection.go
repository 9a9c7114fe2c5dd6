package rest

import (
	"context"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CollectionService interface {
	AddRelic(ctx context.Context, userID uint, relicID uint64, level int, mainStats, subStats domain.StatMap) (domain.UserRelic, error)
	ListRelics(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserRelic], error)
	GetRelic(ctx context.Context, userID uint, id string) (domain.UserRelic, error)
	UpdateRelic(ctx context.Context, userID uint, id string, level int, mainStats, subStats domain.StatMap) (domain.UserRelic, error)
	SetRelicFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteRelic(ctx context.Context, userID uint, id string) error

	AddCharacter(ctx context.Context, userID uint, characterID uint64, level, eidolon int) (domain.UserCharacter, error)
	ListCharacters(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserCharacter], error)
	SetCharacterFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteCharacter(ctx context.Context, userID uint, id string) error

	AddLightCone(ctx context.Context, userID uint, lightConeID uint64, level, superimpose int) (domain.UserLightCone, error)
	ListLightCones(ctx context.Context, userID uint, page domain.Page, favoritesOnly bool) (domain.PageResult[domain.UserLightCone], error)
	SetLightConeFavorite(ctx context.Context, userID uint, id string, favorite bool) error
	DeleteLightCone(ctx context.Context, userID uint, id string) error

	SetItemQuantity(ctx context.Context, userID uint, itemType string, itemID uint64, quantity int64) (domain.InventoryItem, error)
	ListInventory(ctx context.Context, userID uint, itemType string) ([]domain.InventoryItem, error)
}

type CollectionHandler struct {
	collectionService CollectionService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewCollectionHandler(collectionService CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type (
	AddRelicRequest struct {
		RelicID   uint64         `json:"relic_id" validate:"required"`
		Level     int            `json:"level" validate:"gte=0"`
		MainStats domain.StatMap `json:"main_stats"`
		SubStats  domain.StatMap `json:"sub_stats"`
	}

	UpdateRelicRequest struct {
		Level     int            `json:"level" validate:"gte=0"`
		MainStats domain.StatMap `json:"main_stats"`
		SubStats  domain.StatMap `json:"sub_stats"`
	}

	AddCharacterRequest struct {
		CharacterID uint64 `json:"character_id" validate:"required"`
		Level       int    `json:"level"`
		Eidolon     int    `json:"eidolon"`
	}

	AddLightConeRequest struct {
		LightConeID uint64 `json:"light_cone_id" validate:"required"`
		Level       int    `json:"level"`
		Superimpose int    `json:"superimpose"`
	}

	FavoriteRequest struct {
		Favorite *bool `json:"favorite" validate:"required"`
	}

	QuantityRequest struct {
		Quantity *int64 `json:"quantity" validate:"required"`
	}
)

// listParams reads page, limit and favorites from the query string.
func listParams(c echo.Context) (domain.Page, bool, error) {
	page, err := bindPage(c)
	if err != nil {
		return domain.Page{}, false, err
	}

	var favoritesOnly bool
	if err := echo.QueryParamsBinder(c).Bool("favorites", &favoritesOnly).BindError(); err != nil {
		return domain.Page{}, false, err
	}

	return page, favoritesOnly, nil
}

func (h *CollectionHandler) bindFavorite(c echo.Context) (bool, error) {
	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return false, err
	}
	if err := h.validator.Struct(&req); err != nil {
		return false, err
	}
	return *req.Favorite, nil
}

func (h *CollectionHandler) ListRelics(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	page, favoritesOnly, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relics, err := h.collectionService.ListRelics(ctx, userID, page, favoritesOnly)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, relics)
}

func (h *CollectionHandler) AddRelic(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddRelicRequest
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

	relic, err := h.collectionService.AddRelic(ctx, userID, req.RelicID, req.Level, req.MainStats, req.SubStats)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Relic added to collection",
		"relic":   relic,
	})
}

func (h *CollectionHandler) GetRelic(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	relic, err := h.collectionService.GetRelic(ctx, userID, c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find relic",
		"relic":   relic,
	})
}

func (h *CollectionHandler) UpdateRelic(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req UpdateRelicRequest
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

	relic, err := h.collectionService.UpdateRelic(ctx, userID, c.Param("id"), req.Level, req.MainStats, req.SubStats)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update relic",
		"relic":   relic,
	})
}

func (h *CollectionHandler) SetRelicFavorite(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	favorite, err := h.bindFavorite(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.SetRelicFavorite(ctx, userID, id, favorite); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update favorite",
		"id":       id,
		"favorite": favorite,
	})
}

func (h *CollectionHandler) DeleteRelic(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.DeleteRelic(ctx, userID, id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "relic removed from collection",
		"id":      id,
	})
}

func (h *CollectionHandler) ListCharacters(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	page, favoritesOnly, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	characters, err := h.collectionService.ListCharacters(ctx, userID, page, favoritesOnly)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, characters)
}

func (h *CollectionHandler) AddCharacter(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddCharacterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate character request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Level == 0 {
		req.Level = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	character, err := h.collectionService.AddCharacter(ctx, userID, req.CharacterID, req.Level, req.Eidolon)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Character added to collection",
		"character": character,
	})
}

func (h *CollectionHandler) SetCharacterFavorite(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	favorite, err := h.bindFavorite(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.SetCharacterFavorite(ctx, userID, id, favorite); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update favorite",
		"id":       id,
		"favorite": favorite,
	})
}

func (h *CollectionHandler) DeleteCharacter(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.DeleteCharacter(ctx, userID, id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "character removed from collection",
		"id":      id,
	})
}

func (h *CollectionHandler) ListLightCones(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	page, favoritesOnly, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCones, err := h.collectionService.ListLightCones(ctx, userID, page, favoritesOnly)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, lightCones)
}

func (h *CollectionHandler) AddLightCone(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddLightConeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate light cone request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Level == 0 {
		req.Level = 1
	}
	if req.Superimpose == 0 {
		req.Superimpose = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lightCone, err := h.collectionService.AddLightCone(ctx, userID, req.LightConeID, req.Level, req.Superimpose)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Light cone added to collection",
		"light_cone": lightCone,
	})
}

func (h *CollectionHandler) SetLightConeFavorite(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	favorite, err := h.bindFavorite(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.SetLightConeFavorite(ctx, userID, id, favorite); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update favorite",
		"id":       id,
		"favorite": favorite,
	})
}

func (h *CollectionHandler) DeleteLightCone(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.collectionService.DeleteLightCone(ctx, userID, id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "light cone removed from collection",
		"id":      id,
	})
}

func (h *CollectionHandler) ListInventory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.collectionService.ListInventory(ctx, userID, c.Param("type"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get inventory",
		"items":   items,
	})
}

func (h *CollectionHandler) SetItemQuantity(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid item id"})
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.collectionService.SetItemQuantity(ctx, userID, c.Param("type"), itemID, *req.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update inventory",
		"item":    item,
	})
}
