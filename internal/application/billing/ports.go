package billing

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de facturación e inventario. Commit si fn retorna nil; Rollback
// si retorna error: factura, descuentos de lote, registros de venta y
// consecutivo se confirman o se deshacen juntos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		invoiceRepo repository.InvoiceRepository,
		seqRepo repository.SequenceRepository,
		saleRepo repository.SaleRecordRepository,
	) error) error
}
