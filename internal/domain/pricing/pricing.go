package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
)

// Config agrupa los precios y factores configurados. Se lee desde la
// configuración de la aplicación; ver pkg/config.
type Config struct {
	PrecioBaseLevante  decimal.Decimal // precio por ave de levante
	PrecioBasePonedora decimal.Decimal // precio base por ponedora (antes de factor por edad)
	PrecioLibraEngorde decimal.Decimal // precio por libra para engorde
	TasaImpuesto       decimal.Decimal // IVA de la venta, porcentaje 0..100
	SemanasPreLay      int             // por debajo: factor pre-postura
	SemanasPicoLay     int             // hasta aquí: factor pico de postura
}

// DefaultConfig devuelve la configuración de precios por defecto.
func DefaultConfig() Config {
	return Config{
		PrecioBaseLevante:  decimal.NewFromInt(18000),
		PrecioBasePonedora: decimal.NewFromInt(25000),
		PrecioLibraEngorde: decimal.NewFromInt(4500),
		TasaImpuesto:       decimal.Zero,
		SemanasPreLay:      18,
		SemanasPicoLay:     50,
	}
}

// Factores de precio por edad para ponedoras.
var (
	factorPreLay = decimal.NewFromFloat(0.70) // aún no producen
	factorPico   = decimal.NewFromFloat(1.20) // pico de postura
	factorMadura = decimal.NewFromInt(1)
)

// kg -> libras
var librasPorKg = decimal.NewFromFloat(2.20462)

// UnitPrice calcula el precio por ave según etapa y, en ponedoras, la edad.
// Engorde: libras redondeadas × precio por libra. Redondeo a centavos half-up.
func UnitPrice(l *entity.Lote, cfg Config, now time.Time) decimal.Decimal {
	var precio decimal.Decimal
	switch l.Etapa {
	case entity.EtapaLevante:
		precio = cfg.PrecioBaseLevante
	case entity.EtapaEngorde:
		libras := l.PesoPromedioKg.Mul(librasPorKg).Round(0)
		precio = libras.Mul(cfg.PrecioLibraEngorde)
	case entity.EtapaPonedora:
		semanas := l.EdadSemanas(now)
		switch {
		case semanas < cfg.SemanasPreLay:
			precio = cfg.PrecioBasePonedora.Mul(factorPreLay)
		case semanas <= cfg.SemanasPicoLay:
			precio = cfg.PrecioBasePonedora.Mul(factorPico)
		default:
			precio = cfg.PrecioBasePonedora.Mul(factorMadura)
		}
	default:
		return decimal.Zero
	}
	return precio.Round(2)
}

// VolumeDiscount devuelve el descuento por volumen (fracción 0..1) según la
// cantidad de aves del lote.
func VolumeDiscount(cantidad int64) decimal.Decimal {
	switch {
	case cantidad >= 200:
		return decimal.NewFromFloat(0.12)
	case cantidad >= 100:
		return decimal.NewFromFloat(0.08)
	case cantidad >= 50:
		return decimal.NewFromFloat(0.05)
	default:
		return decimal.Zero
	}
}

// Project proyecta un lote como productos vendibles: el lote completo como una
// unidad y la venta por unidad. Función pura: sin efectos, sin errores; un lote
// no vendible devuelve lista vacía.
func Project(l *entity.Lote, cfg Config, now time.Time) []entity.ProductoVenta {
	if l == nil || !l.Vendible() {
		return nil
	}
	unitario := UnitPrice(l, cfg, now)
	// Un engorde sin peso registrado (o una etapa desconocida) proyecta precio
	// cero; un lote sin precio no sale a la vitrina.
	if !unitario.IsPositive() {
		return nil
	}
	descuento := VolumeDiscount(l.CantidadActual)
	bruto := unitario.Mul(decimal.NewFromInt(l.CantidadActual))
	precioLote := bruto.Mul(decimal.NewFromInt(1).Sub(descuento)).Round(2)

	return []entity.ProductoVenta{
		{
			ID:             entity.ProductoVentaID(entity.TipoVentaLoteCompleto, l.ID),
			LoteID:         l.ID,
			Tipo:           entity.TipoVentaLoteCompleto,
			Nombre:         fmt.Sprintf("Lote completo %s (%d aves)", l.Nombre, l.CantidadActual),
			Etapa:          l.Etapa,
			Disponible:     1,
			PrecioUnitario: precioLote,
			Precio:         precioLote,
		},
		{
			ID:             entity.ProductoVentaID(entity.TipoVentaPorUnidad, l.ID),
			LoteID:         l.ID,
			Tipo:           entity.TipoVentaPorUnidad,
			Nombre:         fmt.Sprintf("%s (por unidad)", l.Nombre),
			Etapa:          l.Etapa,
			Disponible:     l.CantidadActual,
			PrecioUnitario: unitario,
			Precio:         unitario,
		},
	}
}

// ComputeLineItem calcula una línea de factura a partir de un producto
// proyectado. Es el único cálculo de línea: el UI lo usa para previsualizar y
// el coordinador lo reusa al emitir, así los totales nunca vienen del cliente.
func ComputeLineItem(p entity.ProductoVenta, cantidad int64, descuentoPct decimal.Decimal, cfg Config) (*entity.InvoiceItem, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if descuentoPct.IsNegative() || descuentoPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ValidationError("descuento_pct", descuentoPct.String(), "debe estar entre 0 y 100")
	}
	cien := decimal.NewFromInt(100)
	subtotal := p.PrecioUnitario.Mul(decimal.NewFromInt(cantidad)).Round(2)
	descuento := subtotal.Mul(descuentoPct).Div(cien).Round(2)
	impuesto := subtotal.Sub(descuento).Mul(cfg.TasaImpuesto).Div(cien).Round(2)
	total := subtotal.Sub(descuento).Add(impuesto)

	return &entity.InvoiceItem{
		LoteID:         p.LoteID,
		TipoVenta:      p.Tipo,
		Descripcion:    p.Nombre,
		Etapa:          p.Etapa,
		Cantidad:       cantidad,
		PrecioUnitario: p.PrecioUnitario,
		DescuentoPct:   descuentoPct,
		Subtotal:       subtotal,
		Descuento:      descuento,
		Impuesto:       impuesto,
		Total:          total,
	}, nil
}
