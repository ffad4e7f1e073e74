package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conceptos habituales de costo de un lote.
const (
	CostoAlimento  = "alimento"
	CostoVacunas   = "vacunas"
	CostoCompra    = "compra"
	CostoMedicinas = "medicinas"
	CostoOtros     = "otros"
)

// CostEntry es un costo registrado contra un lote. La suma de estas entradas
// es la base del costo heredado en un traslado.
type CostEntry struct {
	ID        string
	UserID    string
	LoteID    string
	Concepto  string
	Monto     decimal.Decimal
	Fecha     time.Time
	CreatedAt time.Time
}
