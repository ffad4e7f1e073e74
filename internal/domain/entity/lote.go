package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del ciclo de vida productivo de un lote.
const (
	EtapaLevante  = "levante"  // cría, aún no producen
	EtapaEngorde  = "engorde"  // destinados a venta por peso
	EtapaPonedora = "ponedora" // en producción de huevo
)

// Estados de un lote.
const (
	EstadoLoteActivo     = "activo"
	EstadoLoteVendido    = "vendido"
	EstadoLoteTrasladado = "trasladado"
	EstadoLoteFinalizado = "finalizado"
)

// CostBasis es el costo acumulado que un lote ponedora hereda de su lote de
// origen al momento del traslado. Inmutable una vez registrado.
type CostBasis struct {
	Total               decimal.Decimal // suma de costos registrados al lote origen
	PorUnidad           decimal.Decimal // Total / CantidadTrasladada
	InicioLoteOrigen    time.Time       // fecha de inicio del lote origen
	FechaTraslado       time.Time
	CantidadInicial     int64 // cantidad inicial del lote origen
	CantidadTrasladada  int64
}

// Lote representa un grupo de aves de la misma etapa.
// CantidadActual solo decrece: la mutan exclusivamente el libro de inventario
// (venta) y el traslado de lotes, siempre dentro de una transacción.
type Lote struct {
	ID              string
	UserID          string
	Nombre          string
	Raza            string
	Etapa           string
	CantidadInicial int64
	CantidadActual  int64
	FechaNacimiento time.Time
	FechaInicio     time.Time
	Estado          string
	PesoPromedioKg  decimal.Decimal // 0 = sin registrar
	Ubicacion       string
	LoteOrigenID    string     // si nació de un traslado
	LoteDestinoID   string     // si fue origen de un traslado
	CostBasis       *CostBasis // solo en lotes creados por traslado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EdadSemanas calcula la edad del lote en semanas completas a la fecha dada.
func (l *Lote) EdadSemanas(at time.Time) int {
	if l.FechaNacimiento.IsZero() || at.Before(l.FechaNacimiento) {
		return 0
	}
	return int(at.Sub(l.FechaNacimiento).Hours() / (24 * 7))
}

// Vendible indica si el lote puede proyectarse como producto de venta.
func (l *Lote) Vendible() bool {
	return l.Estado == EstadoLoteActivo && l.CantidadActual > 0
}
