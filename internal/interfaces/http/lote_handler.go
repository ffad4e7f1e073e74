package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/application/lotes"
	"github.com/granjapro/granja-api/internal/application/transfer"
	"github.com/granjapro/granja-api/internal/domain"
)

// LoteHandler maneja las peticiones HTTP de lotes y traslados.
type LoteHandler struct {
	lotesUC    *lotes.LoteUseCase
	transferUC *transfer.TransferLotUseCase
}

// NewLoteHandler construye el handler.
func NewLoteHandler(lotesUC *lotes.LoteUseCase, transferUC *transfer.TransferLotUseCase) *LoteHandler {
	return &LoteHandler{lotesUC: lotesUC, transferUC: transferUC}
}

// Create registra un lote nuevo.
// POST /api/lotes
func (h *LoteHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateBody(in); err != nil {
		return respondError(c, err)
	}
	lote, err := h.lotesUC.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lote)
}

// List lista los lotes del usuario.
// GET /api/lotes
func (h *LoteHandler) List(c *fiber.Ctx) error {
	resultado, err := h.lotesUC.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resultado)
}

// GetByID obtiene un lote por su identificador.
// GET /api/lotes/:id
func (h *LoteHandler) GetByID(c *fiber.Ctx) error {
	lote, err := h.lotesUC.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lote)
}

// RegisterCost anota un costo (alimento, vacunas, etc.) contra un lote.
// POST /api/lotes/:id/costs
func (h *LoteHandler) RegisterCost(c *fiber.Ctx) error {
	var in dto.CostEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateBody(in); err != nil {
		return respondError(c, err)
	}
	costo, err := h.lotesUC.RegisterCost(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(costo)
}

// ListCosts lista los costos acumulados de un lote.
// GET /api/lotes/:id/costs
func (h *LoteHandler) ListCosts(c *fiber.Ctx) error {
	costos, err := h.lotesUC.ListCosts(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(costos)
}

// Transfer traslada aves de un lote de levante/engorde a un lote ponedora nuevo.
// POST /api/lotes/:id/transfer
func (h *LoteHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateBody(in); err != nil {
		return respondError(c, err)
	}
	resultado, err := h.transferUC.TransferLot(c.Context(), userID, c.Params("id"), in.Cantidad, in.Ubicacion, in.Notas)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resultado)
}
