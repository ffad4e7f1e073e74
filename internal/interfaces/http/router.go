package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/granjapro/granja-api/internal/application/billing"
	"github.com/granjapro/granja-api/internal/application/lotes"
	"github.com/granjapro/granja-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LotesUC       *lotes.LoteUseCase
	TransferUC    *transfer.TransferLotUseCase
	ClienteUC     *billing.ClienteUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas las rutas de negocio
// requieren Bearer Token, la identidad se resuelve en el middleware.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes (protegido)
	lotesGroup := protected.Group("/lotes")
	loteHandler := NewLoteHandler(deps.LotesUC, deps.TransferUC)
	lotesGroup.Post("/", loteHandler.Create)
	lotesGroup.Get("/", loteHandler.List)
	lotesGroup.Get("/:id", loteHandler.GetByID)
	lotesGroup.Post("/:id/costs", loteHandler.RegisterCost)
	lotesGroup.Get("/:id/costs", loteHandler.ListCosts)
	lotesGroup.Post("/:id/transfer", loteHandler.Transfer)

	// Productos vendibles (protegido, proyección de lotes)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.CreateInvoice)
	productos.Get("/", productoHandler.List)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)

	// Facturas (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/preview-item", invoiceHandler.PreviewItem)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
}
