package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación de LoteRepository (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `
	id, user_id, nombre, raza, etapa, cantidad_inicial, cantidad_actual,
	fecha_nacimiento, fecha_inicio, estado, peso_promedio_kg, ubicacion,
	lote_origen_id, lote_destino_id,
	costo_total, costo_por_unidad, costo_inicio_origen, costo_fecha_traslado,
	costo_cantidad_inicial, costo_cantidad_trasladada,
	created_at, updated_at`

// Create persiste un lote nuevo (incluido el costo heredado si existe).
func (r *LoteRepo) Create(ctx context.Context, l *entity.Lote) error {
	query := `
		INSERT INTO lotes (` + loteColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`
	args := []any{
		l.ID, l.UserID, l.Nombre, nullIfEmpty(l.Raza), l.Etapa,
		l.CantidadInicial, l.CantidadActual, l.FechaNacimiento, l.FechaInicio,
		l.Estado, l.PesoPromedioKg, nullIfEmpty(l.Ubicacion),
		nullIfEmpty(l.LoteOrigenID), nullIfEmpty(l.LoteDestinoID),
	}
	if cb := l.CostBasis; cb != nil {
		args = append(args, cb.Total, cb.PorUnidad, cb.InicioLoteOrigen, cb.FechaTraslado,
			cb.CantidadInicial, cb.CantidadTrasladada)
	} else {
		args = append(args, nil, nil, nil, nil, nil, nil)
	}
	args = append(args, l.CreatedAt, l.UpdatedAt)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id; nil si no existe.
func (r *LoteRepo) GetByID(ctx context.Context, id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get lote")
}

// GetByIDForUpdate obtiene un lote y bloquea la fila (SELECT FOR UPDATE).
// Es la lectura autoritativa dentro de una transacción de venta o traslado.
func (r *LoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get lote for update")
}

// ListByUser lista los lotes del usuario, más recientes primero.
func (r *LoteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update actualiza cantidad, estado, referencias de traslado y updated_at.
func (r *LoteRepo) Update(ctx context.Context, l *entity.Lote) error {
	query := `
		UPDATE lotes
		SET cantidad_actual = $2, estado = $3, peso_promedio_kg = $4,
		    lote_destino_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		l.ID, l.CantidadActual, l.Estado, l.PesoPromedioKg,
		nullIfEmpty(l.LoteDestinoID), l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lote %s: sin filas afectadas", l.ID)
	}
	return nil
}

func (r *LoteRepo) scanOne(row pgx.Row, op string) (*entity.Lote, error) {
	l, err := scanLote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// scanLote arma la entidad desde una fila; las columnas de costo heredado son
// NULL en lotes que no nacieron de un traslado.
func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	var raza, ubicacion, origenID, destinoID *string
	var cbTotal, cbPorUnidad *decimal.Decimal
	var cbInicio, cbFecha *time.Time
	var cbCantIni, cbCantTras *int64

	err := row.Scan(
		&l.ID, &l.UserID, &l.Nombre, &raza, &l.Etapa,
		&l.CantidadInicial, &l.CantidadActual, &l.FechaNacimiento, &l.FechaInicio,
		&l.Estado, &l.PesoPromedioKg, &ubicacion, &origenID, &destinoID,
		&cbTotal, &cbPorUnidad, &cbInicio, &cbFecha, &cbCantIni, &cbCantTras,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if raza != nil {
		l.Raza = *raza
	}
	if ubicacion != nil {
		l.Ubicacion = *ubicacion
	}
	if origenID != nil {
		l.LoteOrigenID = *origenID
	}
	if destinoID != nil {
		l.LoteDestinoID = *destinoID
	}
	if cbTotal != nil && cbPorUnidad != nil && cbCantIni != nil && cbCantTras != nil {
		cb := &entity.CostBasis{
			Total:              *cbTotal,
			PorUnidad:          *cbPorUnidad,
			CantidadInicial:    *cbCantIni,
			CantidadTrasladada: *cbCantTras,
		}
		if cbInicio != nil {
			cb.InicioLoteOrigen = *cbInicio
		}
		if cbFecha != nil {
			cb.FechaTraslado = *cbFecha
		}
		l.CostBasis = cb
	}
	return &l, nil
}
