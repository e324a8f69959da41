package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-rewriter/internal/models"
)

func errorJSON(c *fiber.Ctx, code int, kind models.ResultKind, message string) error {
	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Kind:  kind,
		Code:  code,
	})
}

// statusForKind maps a failed rewrite to the HTTP status returned to the client.
func statusForKind(kind models.ResultKind) int {
	switch kind {
	case models.KindCredentialError:
		return fiber.StatusUnauthorized
	case models.KindInputError:
		return fiber.StatusBadRequest
	case models.KindExtractionError:
		return fiber.StatusUnprocessableEntity
	case models.KindCallError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors that escape handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
