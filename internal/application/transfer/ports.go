package transfer

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/repository"
)

// TransferTxRunner ejecuta una función dentro de una transacción con los
// repos que el traslado necesita. Commit si fn retorna nil; Rollback si no:
// lote destino, decremento del origen y evento se confirman juntos.
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		costRepo repository.CostEntryRepository,
		eventRepo repository.TransferEventRepository,
	) error) error
}
