package postgres

import (
	"context"
	"fmt"

	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación del consecutivo de facturación. Solo tiene
// sentido dentro de una transacción: el FOR UPDATE serializa a los emisores
// concurrentes del mismo usuario, y el rollback devuelve el número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar la tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// GetForUpdate crea la fila del usuario con valor 1 si no existe, la bloquea
// y devuelve el siguiente valor a emitir.
func (r *SequenceRepo) GetForUpdate(ctx context.Context, userID string) (int64, error) {
	insert := `
		INSERT INTO invoice_sequences (user_id, next_value, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, userID); err != nil {
		return 0, fmt.Errorf("init sequence: %w", err)
	}
	query := `SELECT next_value FROM invoice_sequences WHERE user_id = $1 FOR UPDATE`
	var next int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&next); err != nil {
		return 0, fmt.Errorf("get sequence for update: %w", err)
	}
	return next, nil
}

// Set escribe el siguiente valor a emitir.
func (r *SequenceRepo) Set(ctx context.Context, userID string, next int64) error {
	query := `UPDATE invoice_sequences SET next_value = $2, updated_at = now() WHERE user_id = $1`
	tag, err := r.q.Exec(ctx, query, userID, next)
	if err != nil {
		return fmt.Errorf("set sequence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set sequence %s: sin filas afectadas", userID)
	}
	return nil
}
