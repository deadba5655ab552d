package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jewelryhub/pkg/logger"
	jsonres "jewelryhub/pkg/response"
)

// ErrorHandler renders errors that escape the handlers, keeping the JSON
// envelope consistent with the rest of the API.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		code = "HTTP_ERROR"
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	} else {
		logger.Error("Unhandled error", err, "path", c.Path())
	}

	if err := c.JSON(status, jsonres.Error(code, message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
