package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
)

// statusByCode mapea códigos de dominio a códigos HTTP.
var statusByCode = map[string]int{
	domain.CodeInvalidQuantity:      fiber.StatusBadRequest,
	domain.CodeValidation:           fiber.StatusBadRequest,
	domain.CodeInsufficientQuantity: fiber.StatusConflict,
	domain.CodeLoteAlreadySold:      fiber.StatusConflict,
	domain.CodeConcurrency:          fiber.StatusConflict,
	domain.CodeProductNotFound:      fiber.StatusNotFound,
	domain.CodeLoteNotFound:         fiber.StatusNotFound,
	domain.CodeInvoiceNotFound:      fiber.StatusNotFound,
	domain.CodeClienteNotFound:      fiber.StatusNotFound,
	domain.CodeUnauthorized:         fiber.StatusUnauthorized,
	domain.CodeTransaction:          fiber.StatusInternalServerError,
}

// respondError traduce un error de dominio a la respuesta HTTP. Los errores
// de cantidad viajan con sus cifras en Meta; el resto solo código y mensaje.
func respondError(c *fiber.Ctx, err error) error {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		status, ok := statusByCode[domErr.Code]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Code:    domErr.Code,
			Message: domErr.Message,
			Meta:    domErr.Meta,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
