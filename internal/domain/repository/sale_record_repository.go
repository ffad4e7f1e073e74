package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// SaleRecordRepository define el puerto de los registros de venta por lote.
type SaleRecordRepository interface {
	Create(ctx context.Context, record *entity.SaleRecord) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.SaleRecord, error)
	ListByLote(ctx context.Context, loteID string) ([]*entity.SaleRecord, error)
}
