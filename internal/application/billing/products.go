package billing

import (
	"context"
	"time"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/pricing"
)

// productosDisponibles proyecta los lotes activos del usuario como productos
// vendibles, indexados por id de proyección. Vista puntual: se recalcula en
// cada llamada y no se cachea.
func (uc *CreateInvoiceUseCase) productosDisponibles(ctx context.Context, userID string) (map[string]entity.ProductoVenta, error) {
	lotes, err := uc.loteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	productos := make(map[string]entity.ProductoVenta)
	for _, l := range lotes {
		for _, p := range pricing.Project(l, uc.pricingCfg, now) {
			productos[p.ID] = p
		}
	}
	return productos, nil
}

// ListSellableProducts devuelve la proyección vigente para armar facturas.
func (uc *CreateInvoiceUseCase) ListSellableProducts(ctx context.Context, userID string) ([]dto.ProductoVentaResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	lotes, err := uc.loteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ProductoVentaResponse, 0, len(lotes)*2)
	for _, l := range lotes {
		for _, p := range pricing.Project(l, uc.pricingCfg, now) {
			out = append(out, dto.ProductoVentaResponse{
				ID:             p.ID,
				LoteID:         p.LoteID,
				Tipo:           p.Tipo,
				Nombre:         p.Nombre,
				Etapa:          p.Etapa,
				Disponible:     p.Disponible,
				PrecioUnitario: p.PrecioUnitario,
				Precio:         p.Precio,
			})
		}
	}
	return out, nil
}

// PreviewItem calcula una línea para previsualización en el UI. No valida
// disponibilidad a fondo ni escribe nada: la validación real ocurre al emitir.
func (uc *CreateInvoiceUseCase) PreviewItem(ctx context.Context, userID string, in dto.PreviewItemRequest) (*dto.InvoiceItemResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	productos, err := uc.productosDisponibles(ctx, userID)
	if err != nil {
		return nil, err
	}
	producto, ok := productos[in.ProductoID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	linea, err := pricing.ComputeLineItem(producto, in.Cantidad, in.DescuentoPct, uc.pricingCfg)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceItemResponse{
		LoteID:         linea.LoteID,
		TipoVenta:      linea.TipoVenta,
		Descripcion:    linea.Descripcion,
		Etapa:          linea.Etapa,
		Cantidad:       linea.Cantidad,
		PrecioUnitario: linea.PrecioUnitario,
		DescuentoPct:   linea.DescuentoPct,
		Subtotal:       linea.Subtotal,
		Descuento:      linea.Descuento,
		Impuesto:       linea.Impuesto,
		Total:          linea.Total,
	}, nil
}
