package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error)
	// UpdateEstado cambia el estado y updated_at solo si el estado actual
	// coincide con desde; la factura es inmutable en todo lo demás una vez
	// emitida. Cero filas afectadas significa que otra transición llegó
	// primero y se reporta como error de concurrencia.
	UpdateEstado(ctx context.Context, id, estado, desde string) error
}
