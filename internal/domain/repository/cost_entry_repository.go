package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// CostEntryRepository define el puerto de los costos registrados por lote.
type CostEntryRepository interface {
	Create(ctx context.Context, entry *entity.CostEntry) error
	ListByLote(ctx context.Context, loteID string) ([]*entity.CostEntry, error)
	// SumByLote devuelve la suma de montos registrados al lote (0 si no hay).
	SumByLote(ctx context.Context, loteID string) (decimal.Decimal, error)
}
