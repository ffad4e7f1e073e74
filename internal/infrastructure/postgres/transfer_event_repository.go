package postgres

import (
	"context"
	"fmt"

	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.TransferEventRepository = (*TransferEventRepo)(nil)

// TransferEventRepo implementación de TransferEventRepository (usable con pool o tx).
type TransferEventRepo struct {
	q Querier
}

// NewTransferEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferEventRepository(q Querier) *TransferEventRepo {
	return &TransferEventRepo{q: q}
}

// Create persiste un evento de traslado (inmutable).
func (r *TransferEventRepo) Create(ctx context.Context, ev *entity.TransferEvent) error {
	query := `
		INSERT INTO transfer_events (id, user_id, lote_origen_id, lote_destino_id, cantidad, costo_total, costo_unidad, notas, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.q.Exec(ctx, query,
		ev.ID, ev.UserID, ev.LoteOrigenID, ev.LoteDestinoID,
		ev.Cantidad, ev.CostoTotal, ev.CostoUnidad, nullIfEmpty(ev.Notas), ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer event: %w", err)
	}
	return nil
}

// ListByLote lista los eventos donde el lote fue origen o destino.
func (r *TransferEventRepo) ListByLote(ctx context.Context, loteID string) ([]*entity.TransferEvent, error) {
	query := `
		SELECT id, user_id, lote_origen_id, lote_destino_id, cantidad, costo_total, costo_unidad, COALESCE(notas, ''), created_at
		FROM transfer_events
		WHERE lote_origen_id = $1 OR lote_destino_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, loteID)
	if err != nil {
		return nil, fmt.Errorf("list transfer events: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransferEvent
	for rows.Next() {
		var ev entity.TransferEvent
		if err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.LoteOrigenID, &ev.LoteDestinoID,
			&ev.Cantidad, &ev.CostoTotal, &ev.CostoUnidad, &ev.Notas, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer event: %w", err)
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}
