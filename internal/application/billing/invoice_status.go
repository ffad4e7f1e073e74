package billing

import (
	"context"
	"time"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
)

// CancelInvoice anula una factura emitida. Solo cambia el estado: el
// inventario descontado y los registros de venta no se revierten (regla de
// negocio: lo vendido no se "des-vende").
func (uc *CreateInvoiceUseCase) CancelInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, userID, id, entity.InvoiceEstadoAnulada, "invoice.cancel")
}

// MarkInvoicePaid marca una factura emitida como pagada.
func (uc *CreateInvoiceUseCase) MarkInvoicePaid(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, userID, id, entity.InvoiceEstadoPagada, "invoice.pay")
}

// transition aplica una transición de estado permitida (EMITIDA -> PAGADA o
// EMITIDA -> ANULADA). Cualquier otra mutación posterior a la emisión está
// prohibida.
func (uc *CreateInvoiceUseCase) transition(ctx context.Context, userID, id, estado, accion string) (*dto.InvoiceResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	if inv.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	switch estado {
	case entity.InvoiceEstadoAnulada:
		if !inv.PuedeAnularse() {
			return nil, domain.ValidationError("estado", inv.Estado, "solo una factura EMITIDA puede anularse")
		}
	case entity.InvoiceEstadoPagada:
		if !inv.PuedePagarse() {
			return nil, domain.ValidationError("estado", inv.Estado, "solo una factura EMITIDA puede pagarse")
		}
	}
	// El UPDATE condicional sobre EMITIDA arbitra transiciones concurrentes:
	// si otra ganó entre la lectura y la escritura, aquí llega el error.
	if err := uc.invoiceRepo.UpdateEstado(ctx, id, estado, entity.InvoiceEstadoEmitida); err != nil {
		return nil, err
	}
	inv.Estado = estado
	inv.UpdatedAt = time.Now()

	uc.recordAudit(userID, accion, "invoice", inv.ID, map[string]any{"numero": inv.Numero})
	lineas, _ := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	return uc.toResponse(inv, "", lineas), nil
}
