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

type CurrencyService interface {
	GetAllCurrencies(ctx context.Context, page domain.Page) (domain.PageResult[domain.Currency], error)
	GetCurrencyByID(ctx context.Context, id uint64) (domain.Currency, error)
	CreateCurrency(ctx context.Context, currency *domain.Currency) (*domain.Currency, error)
	UpdateCurrency(ctx context.Context, currency *domain.Currency) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, id uint64) error
}

type CurrencyHandler struct {
	currencyService CurrencyService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewCurrencyHandler(currencyService CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type CurrencyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r CurrencyRequest) toDomain(id uint64) *domain.Currency {
	return &domain.Currency{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (h *CurrencyHandler) GetAllCurrencies(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	currencies, err := h.currencyService.GetAllCurrencies(ctx, page)
	if err != nil {
		logger.Error("Failed to find all currencies", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, currencies)
}

func (h *CurrencyHandler) GetCurrencyByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid currency id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	currency, err := h.currencyService.GetCurrencyByID(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully find currency by id",
		"currency": currency,
	})
}

func (h *CurrencyHandler) CreateCurrency(c echo.Context) error {
	var req CurrencyRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate currency request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	currency, err := h.currencyService.CreateCurrency(ctx, req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create currency", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Currency successfully created",
		"currency": currency,
	})
}

func (h *CurrencyHandler) UpdateCurrency(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid currency id"})
	}

	var req CurrencyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate currency request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	currency, err := h.currencyService.UpdateCurrency(ctx, req.toDomain(id))
	if err != nil {
		logger.Error("Failed to update currency", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully update currency",
		"currency": currency,
	})
}

func (h *CurrencyHandler) DeleteCurrency(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid currency id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.currencyService.DeleteCurrency(ctx, id); err != nil {
		logger.Error("Failed to delete currency", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "currency successfully deleted",
		"currency_id": id,
	})
}
