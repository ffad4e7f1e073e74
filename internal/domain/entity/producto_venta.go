package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tipos de venta de un producto proyectado.
const (
	TipoVentaLoteCompleto = "lote_completo" // el lote entero como una unidad
	TipoVentaPorUnidad    = "por_unidad"    // unidades sueltas del lote
)

// ProductoVenta es la vista puntual de un lote como producto vendible.
// Se recalcula en cada lectura y nunca se persiste: el valor autoritativo de
// cantidades vive en el lote, releído dentro de la transacción de venta.
type ProductoVenta struct {
	ID             string // "{tipo}:{loteID}"
	LoteID         string
	Tipo           string
	Nombre         string
	Etapa          string
	Disponible     int64           // nunca excede CantidadActual del lote al momento de leer
	PrecioUnitario decimal.Decimal // precio por ave
	Precio         decimal.Decimal // lote completo: total con descuento por volumen; por unidad: igual a PrecioUnitario
}

// ProductoVentaID arma el identificador estable de la proyección.
func ProductoVentaID(tipo, loteID string) string {
	return fmt.Sprintf("%s:%s", tipo, loteID)
}
