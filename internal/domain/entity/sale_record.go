package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord es el registro de venta por lote que alimenta los reportes.
// Se escribe una fila por línea de factura, en la misma transacción.
type SaleRecord struct {
	ID             string
	UserID         string
	InvoiceID      string
	LoteID         string
	Etapa          string
	TipoVenta      string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
	ClienteID      string
	CreatedAt      time.Time
}
