package web

import (
	"errors"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber error handler: apperr kinds map to their
// HTTP status, fiber errors pass through, anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return Fail(c, apperr.HTTPStatus(appErr.Kind), appErr.Error())
	}
	if e, ok := err.(*fiber.Error); ok {
		return Fail(c, e.Code, e.Message)
	}
	logging.Log.WithError(err).Error("unexpected error")
	return Fail(c, fiber.StatusInternalServerError, "unexpected server error")
}
