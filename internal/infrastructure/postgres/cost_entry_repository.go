package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.CostEntryRepository = (*CostEntryRepo)(nil)

// CostEntryRepo implementación de CostEntryRepository (usable con pool o tx).
type CostEntryRepo struct {
	q Querier
}

// NewCostEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostEntryRepository(q Querier) *CostEntryRepo {
	return &CostEntryRepo{q: q}
}

// Create persiste un costo registrado a un lote.
func (r *CostEntryRepo) Create(ctx context.Context, e *entity.CostEntry) error {
	query := `
		INSERT INTO cost_entries (id, user_id, lote_id, concepto, monto, fecha, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.LoteID, e.Concepto, e.Monto, e.Fecha, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

// ListByLote lista los costos de un lote, más recientes primero.
func (r *CostEntryRepo) ListByLote(ctx context.Context, loteID string) ([]*entity.CostEntry, error) {
	query := `
		SELECT id, user_id, lote_id, concepto, monto, fecha, created_at
		FROM cost_entries WHERE lote_id = $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query, loteID)
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.CostEntry
	for rows.Next() {
		var e entity.CostEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.LoteID, &e.Concepto, &e.Monto, &e.Fecha, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SumByLote suma los montos registrados al lote (0 si no hay filas).
func (r *CostEntryRepo) SumByLote(ctx context.Context, loteID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(monto), 0) FROM cost_entries WHERE lote_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, loteID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum cost entries: %w", err)
	}
	return sum, nil
}
