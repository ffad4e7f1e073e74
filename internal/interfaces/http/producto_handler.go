package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granjapro/granja-api/internal/application/billing"
)

// ProductoHandler expone la proyección de productos vendibles.
type ProductoHandler struct {
	uc *billing.CreateInvoiceUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *billing.CreateInvoiceUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// List devuelve los productos derivados de los lotes activos del usuario.
// Los precios son orientativos, la cantidad se vuelve a verificar al facturar.
// GET /api/productos
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	productos, err := h.uc.ListSellableProducts(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productos)
}
