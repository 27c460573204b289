package serverutils

import (
	"errors"

	"crm-renewal-be/pkg/renewal"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into BaseResponse
// JSON. Anything unclassified, store failures included, is reported as a
// bare 500 without its cause.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var validationErrs *ValidationErrors
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest, validationErrs.Error()
	case renewal.IsValidationError(err):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, renewal.ErrRenewalNotEligible), errors.Is(err, renewal.ErrSubscriptionNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
