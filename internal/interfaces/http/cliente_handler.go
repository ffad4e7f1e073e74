package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granjapro/granja-api/internal/application/billing"
	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
)

// ClienteHandler maneja las peticiones HTTP de clientes.
type ClienteHandler struct {
	uc *billing.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *billing.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create registra un cliente del usuario.
// POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateBody(in); err != nil {
		return respondError(c, err)
	}
	cliente, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// List lista los clientes del usuario.
// GET /api/clientes
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	clientes, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clientes)
}
