package middleware

import (
	"errors"
	"fmt"
	"myStarCompanion/pkg/logger"
	"net/http"
	"strings"

	jsonres "myStarCompanion/pkg/response"

	"github.com/labstack/echo/v4"
)

// statusCode turns 404 into "NOT_FOUND" and so on.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// ErrorHandler renders errors that escape handlers (unknown routes, bind
// failures, panics caught by Recover) in the same envelope as the middleware.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err, "path", c.Path())
	}

	body := jsonres.Error(statusCode(code), message, nil)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}
