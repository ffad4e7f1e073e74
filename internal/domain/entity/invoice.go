package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. No existe estado borrador: toda factura nace
// EMITIDA y de ahí solo transiciona a PAGADA o ANULADA. Inmutable tras
// emitirse salvo esa transición de estado.
const (
	InvoiceEstadoEmitida = "EMITIDA"
	InvoiceEstadoPagada  = "PAGADA"
	InvoiceEstadoAnulada = "ANULADA"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo      = "efectivo"
	PagoTransferencia = "transferencia"
	PagoCredito       = "credito"
)

// Invoice representa la cabecera de una factura de venta.
// Total == Subtotal − Descuento + Impuesto, recalculado siempre desde las
// líneas al crearla; nunca se edita de forma independiente.
type Invoice struct {
	ID         string
	UserID     string
	Numero     string // consecutivo formateado, ej. "FAC-0007"
	ClienteID  string
	Subtotal   decimal.Decimal
	Descuento  decimal.Decimal
	Impuesto   decimal.Decimal
	Total      decimal.Decimal
	MetodoPago string
	Estado     string
	Notas      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem representa una línea de la factura, con referencia al lote
// consumido y al tipo de venta aplicado.
type InvoiceItem struct {
	ID             string
	InvoiceID      string
	LoteID         string
	TipoVenta      string
	Descripcion    string
	Etapa          string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
	DescuentoPct   decimal.Decimal // porcentaje 0..100
	Subtotal       decimal.Decimal
	Descuento      decimal.Decimal
	Impuesto       decimal.Decimal
	Total          decimal.Decimal
}

// PuedeAnularse indica si la factura admite la transición a ANULADA.
func (i *Invoice) PuedeAnularse() bool { return i.Estado == InvoiceEstadoEmitida }

// PuedePagarse indica si la factura admite la transición a PAGADA.
func (i *Invoice) PuedePagarse() bool { return i.Estado == InvoiceEstadoEmitida }
