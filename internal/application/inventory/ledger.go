package inventory

import (
	"context"
	"time"

	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

// ItemVenta es una línea a validar/aplicar contra el inventario.
type ItemVenta struct {
	ProductoID string // id de la proyección ("{tipo}:{loteID}")
	Cantidad   int64
}

// Ledger valida y aplica descuentos de cantidad contra lotes.
// Validate trabaja sobre la proyección (posiblemente desactualizada) antes de
// abrir transacción; ApplyInTx relee el lote con bloqueo de fila dentro de la
// transacción, que es donde se decide de verdad.
type Ledger struct{}

// NewLedger construye el libro de inventario.
func NewLedger() *Ledger { return &Ledger{} }

// Validate revisa cada línea contra la proyección actual: cantidad positiva,
// producto existente y cantidad dentro de lo disponible. Sin efectos.
func (l *Ledger) Validate(items []ItemVenta, productos map[string]entity.ProductoVenta) error {
	for _, item := range items {
		if item.Cantidad <= 0 {
			return domain.ErrInvalidQuantity
		}
		p, ok := productos[item.ProductoID]
		if !ok {
			return domain.ErrProductNotFound
		}
		if item.Cantidad > p.Disponible {
			return domain.InsufficientQuantity(p.LoteID, item.Cantidad, p.Disponible, p.Etapa)
		}
	}
	return nil
}

// ApplyInTx aplica una línea dentro de la transacción del caller: relee el
// lote por id (no la proyección), verifica contra la cantidad autoritativa y
// descuenta. Venta de lote completo marca el lote como vendido; la venta por
// unidad que llega a cero también. Devuelve el lote ya actualizado.
func (l *Ledger) ApplyInTx(
	ctx context.Context,
	loteRepo repository.LoteRepository,
	producto entity.ProductoVenta,
	cantidad int64,
	now time.Time,
) (*entity.Lote, error) {
	lote, err := loteRepo.GetByIDForUpdate(ctx, producto.LoteID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrLoteNotFound
	}

	switch producto.Tipo {
	case entity.TipoVentaLoteCompleto:
		if lote.Estado == entity.EstadoLoteVendido || lote.Estado == entity.EstadoLoteTrasladado {
			return nil, domain.ErrLoteAlreadySold
		}
		lote.CantidadActual = 0
		lote.Estado = entity.EstadoLoteVendido
	case entity.TipoVentaPorUnidad:
		// Re-chequeo contra la lectura fresca: la proyección usada en Validate
		// pudo quedar atrás frente a una venta concurrente.
		if cantidad > lote.CantidadActual {
			return nil, domain.InsufficientQuantity(lote.ID, cantidad, lote.CantidadActual, lote.Etapa)
		}
		lote.CantidadActual -= cantidad
		if lote.CantidadActual == 0 {
			lote.Estado = entity.EstadoLoteVendido
		}
	default:
		return nil, domain.ErrProductNotFound
	}

	lote.UpdatedAt = now
	if err := loteRepo.Update(ctx, lote); err != nil {
		return nil, err
	}
	return lote, nil
}
