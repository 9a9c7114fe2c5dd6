package rest

import (
	"context"
	"myStarCompanion/domain"
	"myStarCompanion/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OptimizerHandler struct {
		validate         *validator.Validate
		optimizerService OptimizerService
		timeout          time.Duration
	}

	OptimizerService interface {
		OptimizeForUser(ctx context.Context, userID uint, statA, statB string) ([]domain.OptimizedSlot, error)
		StatVocabulary() []string
		Slots() []domain.SlotName
	}

	OptimizeQuery struct {
		StatA string `query:"stat_a" validate:"required"`
		StatB string `query:"stat_b" validate:"required"`
	}
)

func NewOptimizerHandler(svc OptimizerService) *OptimizerHandler {
	return &OptimizerHandler{
		validate:         validator.New(),
		optimizerService: svc,
		timeout:          10 * time.Second,
	}
}

// GET /api/v1/me/optimize?stat_a=SPD&stat_b=Crit%20Rate
func (h *OptimizerHandler) Optimize(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q OptimizeQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	entries, err := h.optimizerService.OptimizeForUser(ctx, userID, q.StatA, q.StatB)
	if err != nil {
		logger.Error("Failed to optimize relics", err, "user_id", userID)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}

// GET /api/v1/optimizer/stats
func (h *OptimizerHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"stats": h.optimizerService.StatVocabulary(),
		"slots": h.optimizerService.Slots(),
	}))
}
