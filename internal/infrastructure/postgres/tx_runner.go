package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/granjapro/granja-api/internal/application/billing"
	"github.com/granjapro/granja-api/internal/application/transfer"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de facturación y traslado.
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ transfer.TransferTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos que la emisión de factura
// necesita (lotes, facturas, consecutivo, registros de venta) atados a la tx.
// Commit si fn retorna nil; Rollback si no.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	invoiceRepo repository.InvoiceRepository,
	seqRepo repository.SequenceRepository,
	saleRepo repository.SaleRecordRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewLoteRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	saleRepo := NewSaleRecordRepository(tx)

	if err := fn(loteRepo, invoiceRepo, seqRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ConcurrencyError("", "invoice")
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con los repos del traslado de lotes.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	costRepo repository.CostEntryRepository,
	eventRepo repository.TransferEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewLoteRepository(tx)
	costRepo := NewCostEntryRepository(tx)
	eventRepo := NewTransferEventRepository(tx)

	if err := fn(loteRepo, costRepo, eventRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ConcurrencyError("", "lote")
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
