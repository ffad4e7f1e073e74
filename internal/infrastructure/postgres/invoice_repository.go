package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura. El número tiene constraint único
// por usuario: un duplicado indica un hueco en el aislamiento del consecutivo.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, numero, cliente_id, subtotal, descuento, impuesto, total, metodo_pago, estado, notas, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.Numero, inv.ClienteID,
		inv.Subtotal, inv.Descuento, inv.Impuesto, inv.Total,
		inv.MetodoPago, inv.Estado, nullIfEmpty(inv.Notas),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura duplicado %s: %w", inv.Numero, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, lote_id, tipo_venta, descripcion, etapa, cantidad, precio_unitario, descuento_pct, subtotal, descuento, impuesto, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.LoteID, item.TipoVenta, item.Descripcion, item.Etapa,
		item.Cantidad, item.PrecioUnitario, item.DescuentoPct,
		item.Subtotal, item.Descuento, item.Impuesto, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

const invoiceColumns = `id, user_id, numero, cliente_id, subtotal, descuento, impuesto, total, metodo_pago, estado, COALESCE(notas, ''), created_at, updated_at`

// GetByID obtiene la cabecera por id; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.UserID, &inv.Numero, &inv.ClienteID,
		&inv.Subtotal, &inv.Descuento, &inv.Impuesto, &inv.Total,
		&inv.MetodoPago, &inv.Estado, &inv.Notas, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, lote_id, tipo_venta, descripcion, etapa, cantidad, precio_unitario, descuento_pct, subtotal, descuento, impuesto, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.LoteID, &it.TipoVenta, &it.Descripcion, &it.Etapa,
			&it.Cantidad, &it.PrecioUnitario, &it.DescuentoPct,
			&it.Subtotal, &it.Descuento, &it.Impuesto, &it.Total,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListByUser lista las facturas del usuario, más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.Numero, &inv.ClienteID,
			&inv.Subtotal, &inv.Descuento, &inv.Impuesto, &inv.Total,
			&inv.MetodoPago, &inv.Estado, &inv.Notas, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

// UpdateEstado cambia el estado solo si el actual sigue siendo desde. El
// predicado en el UPDATE decide la carrera entre transiciones concurrentes:
// la que no encuentra la fila en desde pierde.
func (r *InvoiceRepo) UpdateEstado(ctx context.Context, id, estado, desde string) error {
	query := `UPDATE invoices SET estado = $2, updated_at = now() WHERE id = $1 AND estado = $3`
	tag, err := r.q.Exec(ctx, query, id, estado, desde)
	if err != nil {
		return fmt.Errorf("update invoice estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ConcurrencyError(id, "invoice")
	}
	return nil
}
