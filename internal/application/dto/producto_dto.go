package dto

import "github.com/shopspring/decimal"

// ProductoVentaResponse es un producto proyectado para el armado de facturas.
type ProductoVentaResponse struct {
	ID             string          `json:"id"`
	LoteID         string          `json:"lote_id"`
	Tipo           string          `json:"tipo"`
	Nombre         string          `json:"nombre"`
	Etapa          string          `json:"etapa"`
	Disponible     int64           `json:"disponible"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Precio         decimal.Decimal `json:"precio"`
}
