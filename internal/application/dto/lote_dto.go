package dto

import "github.com/shopspring/decimal"

// CreateLoteRequest es la solicitud de ingreso de un lote.
type CreateLoteRequest struct {
	Nombre          string          `json:"nombre" validate:"required"`
	Raza            string          `json:"raza"`
	Etapa           string          `json:"etapa" validate:"required,oneof=levante engorde ponedora"`
	Cantidad        int64           `json:"cantidad" validate:"required,gt=0"`
	FechaNacimiento string          `json:"fecha_nacimiento" validate:"required"` // YYYY-MM-DD
	PesoPromedioKg  decimal.Decimal `json:"peso_promedio_kg"`
	Ubicacion       string          `json:"ubicacion"`
}

// CostEntryRequest registra un costo contra un lote.
type CostEntryRequest struct {
	Concepto string          `json:"concepto" validate:"required,oneof=alimento vacunas compra medicinas otros"`
	Monto    decimal.Decimal `json:"monto" validate:"required"`
	Fecha    string          `json:"fecha"` // YYYY-MM-DD, hoy si falta
}

// TransferRequest solicita un traslado de lote a etapa ponedora.
type TransferRequest struct {
	Cantidad  int64  `json:"cantidad" validate:"required,gt=0"`
	Ubicacion string `json:"ubicacion"`
	Notas     string `json:"notas"`
}

// CostBasisResponse es el costo heredado registrado en el lote destino.
type CostBasisResponse struct {
	Total              decimal.Decimal `json:"total"`
	PorUnidad          decimal.Decimal `json:"por_unidad"`
	InicioLoteOrigen   string          `json:"inicio_lote_origen"`
	FechaTraslado      string          `json:"fecha_traslado"`
	CantidadInicial    int64           `json:"cantidad_inicial"`
	CantidadTrasladada int64           `json:"cantidad_trasladada"`
}

// LoteResponse es un lote hacia el cliente.
type LoteResponse struct {
	ID              string             `json:"id"`
	Nombre          string             `json:"nombre"`
	Raza            string             `json:"raza,omitempty"`
	Etapa           string             `json:"etapa"`
	CantidadInicial int64              `json:"cantidad_inicial"`
	CantidadActual  int64              `json:"cantidad_actual"`
	FechaNacimiento string             `json:"fecha_nacimiento"`
	FechaInicio     string             `json:"fecha_inicio"`
	Estado          string             `json:"estado"`
	PesoPromedioKg  decimal.Decimal    `json:"peso_promedio_kg"`
	Ubicacion       string             `json:"ubicacion,omitempty"`
	LoteOrigenID    string             `json:"lote_origen_id,omitempty"`
	LoteDestinoID   string             `json:"lote_destino_id,omitempty"`
	CostBasis       *CostBasisResponse `json:"cost_basis,omitempty"`
}

// TransferResponse es el resultado de un traslado.
type TransferResponse struct {
	Origen      LoteResponse      `json:"origen"`
	Destino     LoteResponse      `json:"destino"`
	CostBasis   CostBasisResponse `json:"cost_basis"`
	Advertencia string            `json:"advertencia,omitempty"`
}
