package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"productos/internal/errs"
	"productos/internal/middleware"
	"productos/internal/models"
)

// ErrorHandler converts any error returned by a handler or middleware into
// a JSON error body. It is installed as fiber.Config.ErrorHandler.
// Client errors are left to the access log; server errors are logged here
// with their stack.
func ErrorHandler(log *zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := translate(err, c.Path(), time.Now())

		if status >= fiber.StatusInternalServerError {
			log.Error().Stack().Err(err).
				Int("status", status).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("request_id", c.Locals(middleware.RequestIDKey)).
				Msg("request failed")
		}

		return c.Status(status).JSON(body)
	}
}

// translate maps err to a status code and response body. Checks run in
// priority order and every error yields exactly one response.
func translate(err error, path string, now time.Time) (int, interface{}) {
	var (
		notFound     *errs.NotFoundError
		stock        *errs.InsufficientStockError
		validation   *errs.ValidationError
		badRequest   *errs.BadRequestError
		unauthorized *errs.UnauthorizedError
		conflict     *errs.ConflictError
		fiberErr     *fiber.Error
	)

	errorResponse := func(status int, message string) (int, interface{}) {
		return status, ErrorResponse{Timestamp: now, Status: status, Message: message, Path: path}
	}

	switch {
	case errors.As(err, &notFound):
		return errorResponse(fiber.StatusNotFound, notFound.Error())
	case errors.As(err, &stock):
		return errorResponse(fiber.StatusBadRequest, stock.Error())
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, ValidationErrorResponse{
			Timestamp: now,
			Status:    fiber.StatusBadRequest,
			Path:      path,
			Errors:    validation.Fields,
		}
	case errors.As(err, &badRequest):
		return errorResponse(fiber.StatusBadRequest, badRequest.Error())
	case errors.Is(err, models.ErrUnknownCategory):
		return errorResponse(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &unauthorized):
		return errorResponse(fiber.StatusUnauthorized, unauthorized.Error())
	case errors.As(err, &conflict):
		return errorResponse(fiber.StatusConflict, conflict.Error())
	case errors.As(err, &fiberErr):
		return errorResponse(fiberErr.Code, fiberErr.Message)
	default:
		return errorResponse(fiber.StatusInternalServerError, err.Error())
	}
}
