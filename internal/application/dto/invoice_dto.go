package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest es una línea solicitada por el cliente. Solo viaja el
// producto proyectado, la cantidad y el descuento: precios y totales se
// recalculan siempre en el servidor.
type InvoiceItemRequest struct {
	ProductoID   string          `json:"producto_id" validate:"required"`
	Cantidad     int64           `json:"cantidad" validate:"required"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
}

// CreateInvoiceRequest es la solicitud de creación de factura.
type CreateInvoiceRequest struct {
	ClienteID  string               `json:"cliente_id" validate:"required"`
	Items      []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	MetodoPago string               `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia credito"`
	Notas      string               `json:"notas"`
}

// PreviewItemRequest solicita el cálculo de una línea sin emitir nada.
type PreviewItemRequest struct {
	ProductoID   string          `json:"producto_id" validate:"required"`
	Cantidad     int64           `json:"cantidad" validate:"required"`
	DescuentoPct decimal.Decimal `json:"descuento_pct"`
}

// InvoiceItemResponse es una línea de factura en la respuesta.
type InvoiceItemResponse struct {
	ID             string          `json:"id,omitempty"`
	LoteID         string          `json:"lote_id"`
	TipoVenta      string          `json:"tipo_venta"`
	Descripcion    string          `json:"descripcion"`
	Etapa          string          `json:"etapa"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Descuento      decimal.Decimal `json:"descuento"`
	Impuesto       decimal.Decimal `json:"impuesto"`
	Total          decimal.Decimal `json:"total"`
}

// InvoiceResponse es la factura completa hacia el cliente.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	Numero        string                `json:"numero"`
	ClienteID     string                `json:"cliente_id"`
	ClienteNombre string                `json:"cliente_nombre,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Descuento     decimal.Decimal       `json:"descuento"`
	Impuesto      decimal.Decimal       `json:"impuesto"`
	Total         decimal.Decimal       `json:"total"`
	MetodoPago    string                `json:"metodo_pago"`
	Estado        string                `json:"estado"`
	Notas         string                `json:"notas,omitempty"`
	Fecha         string                `json:"fecha"`
	Items         []InvoiceItemResponse `json:"items"`
}
