package rest

import (
	"context"
	"errors"
	"fmt"
	"myStarCompanion/domain"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps service error messages to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "already exists"),
		strings.Contains(msg, "already owned"),
		strings.Contains(msg, "still owned"):
		return http.StatusConflict
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "must be"),
		strings.Contains(msg, "cannot be"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
}

// bindPage reads ?page= and ?limit=, leaving defaults to domain.Page.Normalize.
func bindPage(c echo.Context) (domain.Page, error) {
	var page domain.Page
	err := echo.QueryParamsBinder(c).
		Int("page", &page.Page).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return domain.Page{}, errors.New("invalid pagination parameters")
	}
	if page.Page > domain.MaxPage {
		return domain.Page{}, fmt.Errorf("page must be at most %d", domain.MaxPage)
	}

	return page.Normalize(), nil
}

func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}

	return id, nil
}

func currentUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}
