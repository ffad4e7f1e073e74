package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// LoteRepository define el puerto de persistencia para lotes.
// GetByIDForUpdate se usa dentro de transacciones: bloquea la fila y devuelve
// la cantidad autoritativa, no la de la proyección posiblemente desactualizada.
type LoteRepository interface {
	Create(ctx context.Context, lote *entity.Lote) error
	GetByID(ctx context.Context, id string) (*entity.Lote, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Lote, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Lote, error)
	Update(ctx context.Context, lote *entity.Lote) error
}
