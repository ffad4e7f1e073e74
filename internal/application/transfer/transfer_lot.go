package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
	"github.com/granjapro/granja-api/pkg/logger"
)

// Config del traslado de lotes.
type Config struct {
	// SemanasRecomendadas: edad mínima sugerida para pasar a ponedora.
	// Por debajo el traslado procede igual pero con advertencia.
	SemanasRecomendadas int
}

// DefaultConfig devuelve la configuración por defecto del traslado.
func DefaultConfig() Config { return Config{SemanasRecomendadas: 16} }

// TransferLotUseCase mueve aves de un lote de levante o engorde a un lote
// ponedora nuevo, heredando el costo acumulado. Nunca al revés ni entre lotes
// de la misma etapa.
type TransferLotUseCase struct {
	txRunner TransferTxRunner
	loteRepo repository.LoteRepository
	cfg      Config
	audit    repository.AuditLogRepository
	log      *logger.Logger
}

// NewTransferLotUseCase construye el caso de uso.
func NewTransferLotUseCase(
	txRunner TransferTxRunner,
	loteRepo repository.LoteRepository,
	cfg Config,
	audit repository.AuditLogRepository,
	log *logger.Logger,
) *TransferLotUseCase {
	return &TransferLotUseCase{
		txRunner: txRunner,
		loteRepo: loteRepo,
		cfg:      cfg,
		audit:    audit,
		log:      log,
	}
}

// TransferLot valida precondiciones fuera de la transacción (un rechazo no
// escribe nada) y luego, atómicamente: crea el lote ponedora destino con el
// costo heredado, descuenta el origen y registra el evento de traslado.
func (uc *TransferLotUseCase) TransferLot(ctx context.Context, userID, loteOrigenID string, cantidad int64, ubicacion, notas string) (*dto.TransferResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	origen, err := uc.loteRepo.GetByID(ctx, loteOrigenID)
	if err != nil {
		return nil, err
	}
	if origen == nil {
		return nil, domain.ErrLoteNotFound
	}
	if origen.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	if origen.Etapa == entity.EtapaPonedora {
		return nil, domain.ValidationError("etapa", origen.Etapa, "un lote ponedora no puede trasladarse")
	}
	if origen.Estado != entity.EstadoLoteActivo {
		if origen.Estado == entity.EstadoLoteVendido || origen.Estado == entity.EstadoLoteTrasladado {
			return nil, domain.ErrLoteAlreadySold
		}
		return nil, domain.ValidationError("estado", origen.Estado, "el lote debe estar activo")
	}
	if cantidad > origen.CantidadActual {
		return nil, domain.InsufficientQuantity(origen.ID, cantidad, origen.CantidadActual, origen.Etapa)
	}

	now := time.Now()

	// La edad es informativa: por debajo de lo recomendado se avisa, no se bloquea.
	advertencia := ""
	if semanas := origen.EdadSemanas(now); semanas < uc.cfg.SemanasRecomendadas {
		advertencia = fmt.Sprintf("el lote tiene %d semanas; se recomiendan al menos %d para pasar a ponedora", semanas, uc.cfg.SemanasRecomendadas)
	}

	var destino *entity.Lote
	var costBasis entity.CostBasis

	err = uc.txRunner.RunTransfer(ctx, func(
		loteRepo repository.LoteRepository,
		costRepo repository.CostEntryRepository,
		eventRepo repository.TransferEventRepository,
	) error {
		// Relectura con bloqueo: las precondiciones se re-verifican contra el
		// estado fresco por si otra venta o traslado llegó primero.
		fresco, err := loteRepo.GetByIDForUpdate(ctx, loteOrigenID)
		if err != nil {
			return err
		}
		if fresco == nil {
			return domain.ErrLoteNotFound
		}
		if fresco.Estado != entity.EstadoLoteActivo {
			return domain.ErrLoteAlreadySold
		}
		if cantidad > fresco.CantidadActual {
			return domain.InsufficientQuantity(fresco.ID, cantidad, fresco.CantidadActual, fresco.Etapa)
		}

		// Costo heredado: todo lo registrado al origen desde su creación,
		// repartido entre las aves trasladadas.
		costoTotal, err := costRepo.SumByLote(ctx, loteOrigenID)
		if err != nil {
			return err
		}
		costoUnidad := decimal.Zero
		if cantidad > 0 {
			costoUnidad = costoTotal.DivRound(decimal.NewFromInt(cantidad), 4)
		}
		costBasis = entity.CostBasis{
			Total:              costoTotal,
			PorUnidad:          costoUnidad,
			InicioLoteOrigen:   fresco.FechaInicio,
			FechaTraslado:      now,
			CantidadInicial:    fresco.CantidadInicial,
			CantidadTrasladada: cantidad,
		}

		destino = &entity.Lote{
			ID:              uuid.New().String(),
			UserID:          userID,
			Nombre:          fresco.Nombre,
			Raza:            fresco.Raza,
			Etapa:           entity.EtapaPonedora,
			CantidadInicial: cantidad,
			CantidadActual:  cantidad,
			FechaNacimiento: fresco.FechaNacimiento,
			FechaInicio:     now,
			Estado:          entity.EstadoLoteActivo,
			PesoPromedioKg:  fresco.PesoPromedioKg,
			Ubicacion:       ubicacion,
			LoteOrigenID:    fresco.ID,
			CostBasis:       &costBasis,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := loteRepo.Create(ctx, destino); err != nil {
			return err
		}

		fresco.CantidadActual -= cantidad
		if fresco.CantidadActual == 0 {
			fresco.Estado = entity.EstadoLoteTrasladado
		}
		fresco.LoteDestinoID = destino.ID
		fresco.UpdatedAt = now
		if err := loteRepo.Update(ctx, fresco); err != nil {
			return err
		}
		origen = fresco

		return eventRepo.Create(ctx, &entity.TransferEvent{
			ID:            uuid.New().String(),
			UserID:        userID,
			LoteOrigenID:  fresco.ID,
			LoteDestinoID: destino.ID,
			Cantidad:      cantidad,
			CostoTotal:    costoTotal,
			CostoUnidad:   costoUnidad,
			Notas:         notas,
			CreatedAt:     now,
		})
	})
	if err != nil {
		var domErr *domain.Error
		if errors.As(err, &domErr) {
			return nil, domErr
		}
		return nil, domain.TransactionError("transfer_lot", err)
	}

	uc.recordAudit(userID, destino.ID, loteOrigenID, cantidad)

	return &dto.TransferResponse{
		Origen:      *LoteToResponse(origen),
		Destino:     *LoteToResponse(destino),
		CostBasis:   *costBasisToResponse(&costBasis),
		Advertencia: advertencia,
	}, nil
}

func (uc *TransferLotUseCase) recordAudit(userID, destinoID, origenID string, cantidad int64) {
	if uc.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.audit.Record(ctx, &entity.AuditLog{
			ID:        uuid.New().String(),
			ActorID:   userID,
			Accion:    "lote.transfer",
			Entidad:   "lote",
			EntidadID: destinoID,
			Meta:      map[string]any{"lote_origen_id": origenID, "cantidad": cantidad},
			CreatedAt: time.Now(),
		}); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Msg("auditoría no registrada")
		}
	}()
}

// LoteToResponse convierte la entidad al DTO de salida.
func LoteToResponse(l *entity.Lote) *dto.LoteResponse {
	resp := &dto.LoteResponse{
		ID:              l.ID,
		Nombre:          l.Nombre,
		Raza:            l.Raza,
		Etapa:           l.Etapa,
		CantidadInicial: l.CantidadInicial,
		CantidadActual:  l.CantidadActual,
		FechaNacimiento: l.FechaNacimiento.Format("2006-01-02"),
		FechaInicio:     l.FechaInicio.Format("2006-01-02"),
		Estado:          l.Estado,
		PesoPromedioKg:  l.PesoPromedioKg,
		Ubicacion:       l.Ubicacion,
		LoteOrigenID:    l.LoteOrigenID,
		LoteDestinoID:   l.LoteDestinoID,
	}
	if l.CostBasis != nil {
		resp.CostBasis = costBasisToResponse(l.CostBasis)
	}
	return resp
}

func costBasisToResponse(cb *entity.CostBasis) *dto.CostBasisResponse {
	return &dto.CostBasisResponse{
		Total:              cb.Total,
		PorUnidad:          cb.PorUnidad,
		InicioLoteOrigen:   cb.InicioLoteOrigen.Format("2006-01-02"),
		FechaTraslado:      cb.FechaTraslado.Format("2006-01-02"),
		CantidadInicial:    cb.CantidadInicial,
		CantidadTrasladada: cb.CantidadTrasladada,
	}
}
