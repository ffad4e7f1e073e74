package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// TransferEventRepository define el puerto de los eventos de traslado.
type TransferEventRepository interface {
	Create(ctx context.Context, event *entity.TransferEvent) error
	ListByLote(ctx context.Context, loteID string) ([]*entity.TransferEvent, error)
}
