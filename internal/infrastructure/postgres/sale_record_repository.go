package postgres

import (
	"context"
	"fmt"

	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.SaleRecordRepository = (*SaleRecordRepo)(nil)

// SaleRecordRepo implementación de SaleRecordRepository (usable con pool o tx).
type SaleRecordRepo struct {
	q Querier
}

// NewSaleRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRecordRepository(q Querier) *SaleRecordRepo {
	return &SaleRecordRepo{q: q}
}

// Create persiste un registro de venta.
func (r *SaleRecordRepo) Create(ctx context.Context, rec *entity.SaleRecord) error {
	query := `
		INSERT INTO sale_records (id, user_id, invoice_id, lote_id, etapa, tipo_venta, cantidad, precio_unitario, total, cliente_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.UserID, rec.InvoiceID, rec.LoteID, rec.Etapa, rec.TipoVenta,
		rec.Cantidad, rec.PrecioUnitario, rec.Total, rec.ClienteID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale record: %w", err)
	}
	return nil
}

// ListByInvoice lista los registros de venta de una factura.
func (r *SaleRecordRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.SaleRecord, error) {
	return r.list(ctx, `invoice_id`, invoiceID)
}

// ListByLote lista los registros de venta de un lote.
func (r *SaleRecordRepo) ListByLote(ctx context.Context, loteID string) ([]*entity.SaleRecord, error) {
	return r.list(ctx, `lote_id`, loteID)
}

func (r *SaleRecordRepo) list(ctx context.Context, column, value string) ([]*entity.SaleRecord, error) {
	query := `
		SELECT id, user_id, invoice_id, lote_id, etapa, tipo_venta, cantidad, precio_unitario, total, cliente_id, created_at
		FROM sale_records WHERE ` + column + ` = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("list sale records: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleRecord
	for rows.Next() {
		var rec entity.SaleRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.InvoiceID, &rec.LoteID, &rec.Etapa, &rec.TipoVenta,
			&rec.Cantidad, &rec.PrecioUnitario, &rec.Total, &rec.ClienteID, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
