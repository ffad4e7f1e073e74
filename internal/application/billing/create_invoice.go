package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/application/inventory"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/pricing"
	"github.com/granjapro/granja-api/internal/domain/repository"
	"github.com/granjapro/granja-api/pkg/logger"
)

// CreateInvoiceUseCase crea la factura y descuenta el inventario de lotes en
// una sola transacción: consecutivo, totales, descuentos y registros de venta
// se confirman o se deshacen juntos.
type CreateInvoiceUseCase struct {
	txRunner    BillingTxRunner
	loteRepo    repository.LoteRepository
	clienteRepo repository.ClienteRepository
	invoiceRepo repository.InvoiceRepository
	ledger      *inventory.Ledger
	seq         *SequenceGenerator
	pricingCfg  pricing.Config
	audit       repository.AuditLogRepository
	log         *logger.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	loteRepo repository.LoteRepository,
	clienteRepo repository.ClienteRepository,
	invoiceRepo repository.InvoiceRepository,
	ledger *inventory.Ledger,
	seq *SequenceGenerator,
	pricingCfg pricing.Config,
	audit repository.AuditLogRepository,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		loteRepo:    loteRepo,
		clienteRepo: clienteRepo,
		invoiceRepo: invoiceRepo,
		ledger:      ledger,
		seq:         seq,
		pricingCfg:  pricingCfg,
		audit:       audit,
		log:         log,
	}
}

// CreateInvoice valida todo antes de abrir la transacción (un rechazo no
// consume consecutivo ni toca lotes) y luego ejecuta numeración, descuento de
// inventario, registros de venta y persistencia de la factura atómicamente.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ClienteID == "" {
		return nil, domain.ValidationError("cliente_id", in.ClienteID, "requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.ValidationError("items", len(in.Items), "al menos una línea")
	}

	cliente, err := uc.clienteRepo.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrClienteNotFound
	}
	if cliente.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	// Proyección vigente para la validación previa (consultiva; dentro de la
	// transacción se relee el lote con bloqueo de fila).
	productos, err := uc.productosDisponibles(ctx, userID)
	if err != nil {
		return nil, err
	}
	itemsVenta := make([]inventory.ItemVenta, 0, len(in.Items))
	for _, it := range in.Items {
		itemsVenta = append(itemsVenta, inventory.ItemVenta{ProductoID: it.ProductoID, Cantidad: it.Cantidad})
	}
	if err := uc.ledger.Validate(itemsVenta, productos); err != nil {
		return nil, err
	}

	metodoPago := in.MetodoPago
	if metodoPago == "" {
		metodoPago = entity.PagoEfectivo
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var inv *entity.Invoice
	var lineas []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		loteRepo repository.LoteRepository,
		invoiceRepo repository.InvoiceRepository,
		seqRepo repository.SequenceRepository,
		saleRepo repository.SaleRecordRepository,
	) error {
		// 1) Consecutivo, dentro de la transacción: un rollback lo devuelve.
		numero, err := uc.seq.NextNumber(ctx, seqRepo, userID)
		if err != nil {
			return err
		}

		// 2) Por cada línea: descuento de lote con lectura fresca y cálculo
		// de precios en el servidor. Los totales del cliente se ignoran.
		var subtotal, descuento, impuesto, total decimal.Decimal
		lineas = lineas[:0]
		for _, it := range in.Items {
			producto := productos[it.ProductoID]
			if _, err := uc.ledger.ApplyInTx(ctx, loteRepo, producto, it.Cantidad, now); err != nil {
				return err
			}
			linea, err := pricing.ComputeLineItem(producto, it.Cantidad, it.DescuentoPct, uc.pricingCfg)
			if err != nil {
				return err
			}
			linea.ID = uuid.New().String()
			linea.InvoiceID = invoiceID
			subtotal = subtotal.Add(linea.Subtotal)
			descuento = descuento.Add(linea.Descuento)
			impuesto = impuesto.Add(linea.Impuesto)
			total = total.Add(linea.Total)
			lineas = append(lineas, linea)

			// 3) Registro de venta por lote para reportes, misma transacción.
			if err := saleRepo.Create(ctx, &entity.SaleRecord{
				ID:             uuid.New().String(),
				UserID:         userID,
				InvoiceID:      invoiceID,
				LoteID:         producto.LoteID,
				Etapa:          producto.Etapa,
				TipoVenta:      producto.Tipo,
				Cantidad:       it.Cantidad,
				PrecioUnitario: producto.PrecioUnitario,
				Total:          linea.Total,
				ClienteID:      in.ClienteID,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}

		// 4) Cabecera y líneas.
		inv = &entity.Invoice{
			ID:         invoiceID,
			UserID:     userID,
			Numero:     numero,
			ClienteID:  in.ClienteID,
			Subtotal:   subtotal,
			Descuento:  descuento,
			Impuesto:   impuesto,
			Total:      total,
			MetodoPago: metodoPago,
			Estado:     entity.InvoiceEstadoEmitida,
			Notas:      in.Notas,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, linea := range lineas {
			if err := invoiceRepo.CreateItem(ctx, linea); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Un error de dominio (ej. cantidad insuficiente en la relectura)
		// viaja tal cual; cualquier otro fallo en la transacción se reporta
		// como error transaccional con su causa.
		var domErr *domain.Error
		if errors.As(err, &domErr) {
			return nil, domErr
		}
		return nil, domain.TransactionError("create_invoice", err)
	}

	uc.recordAudit(userID, "invoice.create", "invoice", inv.ID, map[string]any{
		"numero": inv.Numero,
		"total":  inv.Total.String(),
	})
	return uc.toResponse(inv, cliente.Nombre, lineas), nil
}

// recordAudit registra la operación en el log de auditoría sin bloquear ni
// fallar la operación principal.
func (uc *CreateInvoiceUseCase) recordAudit(actorID, accion, entidad, entidadID string, meta map[string]any) {
	if uc.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.audit.Record(ctx, &entity.AuditLog{
			ID:        uuid.New().String(),
			ActorID:   actorID,
			Accion:    accion,
			Entidad:   entidad,
			EntidadID: entidadID,
			Meta:      meta,
			CreatedAt: time.Now(),
		}); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Str("accion", accion).Msg("auditoría no registrada")
		}
	}()
}

func (uc *CreateInvoiceUseCase) toResponse(inv *entity.Invoice, clienteNombre string, lineas []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		Numero:        inv.Numero,
		ClienteID:     inv.ClienteID,
		ClienteNombre: clienteNombre,
		Subtotal:      inv.Subtotal,
		Descuento:     inv.Descuento,
		Impuesto:      inv.Impuesto,
		Total:         inv.Total,
		MetodoPago:    inv.MetodoPago,
		Estado:        inv.Estado,
		Notas:         inv.Notas,
		Fecha:         inv.CreatedAt.Format("2006-01-02"),
		Items:         make([]dto.InvoiceItemResponse, 0, len(lineas)),
	}
	for _, l := range lineas {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:             l.ID,
			LoteID:         l.LoteID,
			TipoVenta:      l.TipoVenta,
			Descripcion:    l.Descripcion,
			Etapa:          l.Etapa,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			DescuentoPct:   l.DescuentoPct,
			Subtotal:       l.Subtotal,
			Descuento:      l.Descuento,
			Impuesto:       l.Impuesto,
			Total:          l.Total,
		})
	}
	return resp
}

// GetInvoice obtiene una factura con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
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
	lineas, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	clienteNombre := ""
	if cliente, err := uc.clienteRepo.GetByID(ctx, inv.ClienteID); err == nil && cliente != nil {
		clienteNombre = cliente.Nombre
	}
	return uc.toResponse(inv, clienteNombre, lineas), nil
}

// ListInvoices lista las facturas del usuario (solo cabeceras).
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, userID string) ([]*dto.InvoiceResponse, error) {
	invs, err := uc.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, uc.toResponse(inv, "", nil))
	}
	return out, nil
}
