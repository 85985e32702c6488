package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "govsite/internal/errors"
)

// MessageResponse is the body of delete and logout responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of every 201 response.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// bind decodes the request into dst and validates it. Decoding failures
// and rule violations both produce a 400.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		e := apperrors.Binding(err)
		return echo.NewHTTPError(e.StatusCode, e.ToErrorResponse())
	}
	if err := c.Validate(dst); err != nil {
		e := apperrors.Validation(err)
		return echo.NewHTTPError(e.StatusCode, e.ToErrorResponse())
	}
	return nil
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// fail translates err into an echo error. Unexpected errors are logged and
// reach the client only as a generic message.
func fail(c echo.Context, log *zap.Logger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// queryLimit parses ?limit=. Missing, malformed or negative values mean no limit.
func queryLimit(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
