package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferEvent registra un traslado de lote completado. Inmutable.
type TransferEvent struct {
	ID            string
	UserID        string
	LoteOrigenID  string
	LoteDestinoID string
	Cantidad      int64
	CostoTotal    decimal.Decimal
	CostoUnidad   decimal.Decimal
	Notas         string
	CreatedAt     time.Time
}
