package controllers

import (
	"errors"
	"net/http"

	"atelierapi/logger"
	"atelierapi/models"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLoggerMiddleware logs one line per request through the zap logger.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []logger.Field{
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, logger.ErrorF(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}

// errorResponse maps core errors to status codes: validation 400, missing
// records 404, anything else 500.
func errorResponse(c echo.Context, err error) error {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Message})
	case errors.Is(err, models.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Piece not found"})
	case errors.Is(err, models.ErrOutfitNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}

	logger.Error("unexpected error", logger.String("path", c.Path()), logger.ErrorF(err))
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong, please try again"})
}

// bindRequest binds and validates req. Failures come back as validation
// errors so errorResponse answers 400.
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if msg, ok := httpErr.Message.(string); ok {
				return models.NewValidationError(msg)
			}
		}
		return models.NewValidationError(err.Error())
	}
	return nil
}
