package lotes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/application/transfer"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

// LoteUseCase administra el ingreso, consulta y costos de lotes.
// Las mutaciones de cantidad no pasan por aquí: solo el libro de inventario
// (venta) y el traslado tocan CantidadActual.
type LoteUseCase struct {
	loteRepo repository.LoteRepository
	costRepo repository.CostEntryRepository
}

// NewLoteUseCase construye el caso de uso.
func NewLoteUseCase(loteRepo repository.LoteRepository, costRepo repository.CostEntryRepository) *LoteUseCase {
	return &LoteUseCase{loteRepo: loteRepo, costRepo: costRepo}
}

// Create ingresa un lote nuevo.
func (uc *LoteUseCase) Create(ctx context.Context, userID string, in dto.CreateLoteRequest) (*dto.LoteResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	nacimiento, err := time.Parse("2006-01-02", in.FechaNacimiento)
	if err != nil {
		return nil, domain.ValidationError("fecha_nacimiento", in.FechaNacimiento, "formato YYYY-MM-DD")
	}
	now := time.Now()
	lote := &entity.Lote{
		ID:              uuid.New().String(),
		UserID:          userID,
		Nombre:          in.Nombre,
		Raza:            in.Raza,
		Etapa:           in.Etapa,
		CantidadInicial: in.Cantidad,
		CantidadActual:  in.Cantidad,
		FechaNacimiento: nacimiento,
		FechaInicio:     now,
		Estado:          entity.EstadoLoteActivo,
		PesoPromedioKg:  in.PesoPromedioKg,
		Ubicacion:       in.Ubicacion,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.loteRepo.Create(ctx, lote); err != nil {
		return nil, err
	}
	return transfer.LoteToResponse(lote), nil
}

// Get obtiene un lote del usuario.
func (uc *LoteUseCase) Get(ctx context.Context, userID, id string) (*dto.LoteResponse, error) {
	lote, err := uc.ownedLote(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return transfer.LoteToResponse(lote), nil
}

// List lista los lotes del usuario (todas las etapas y estados).
func (uc *LoteUseCase) List(ctx context.Context, userID string) ([]*dto.LoteResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	lotesList, err := uc.loteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoteResponse, 0, len(lotesList))
	for _, l := range lotesList {
		out = append(out, transfer.LoteToResponse(l))
	}
	return out, nil
}

// RegisterCost registra un costo contra un lote activo. Estos montos son la
// base del costo heredado en un traslado.
func (uc *LoteUseCase) RegisterCost(ctx context.Context, userID, loteID string, in dto.CostEntryRequest) (*entity.CostEntry, error) {
	lote, err := uc.ownedLote(ctx, userID, loteID)
	if err != nil {
		return nil, err
	}
	if in.Monto.IsNegative() || in.Monto.IsZero() {
		return nil, domain.ValidationError("monto", in.Monto.String(), "debe ser mayor que cero")
	}
	fecha := time.Now()
	if in.Fecha != "" {
		fecha, err = time.Parse("2006-01-02", in.Fecha)
		if err != nil {
			return nil, domain.ValidationError("fecha", in.Fecha, "formato YYYY-MM-DD")
		}
	}
	entry := &entity.CostEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		LoteID:    lote.ID,
		Concepto:  in.Concepto,
		Monto:     in.Monto,
		Fecha:     fecha,
		CreatedAt: time.Now(),
	}
	if err := uc.costRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListCosts lista los costos registrados a un lote.
func (uc *LoteUseCase) ListCosts(ctx context.Context, userID, loteID string) ([]*entity.CostEntry, error) {
	if _, err := uc.ownedLote(ctx, userID, loteID); err != nil {
		return nil, err
	}
	return uc.costRepo.ListByLote(ctx, loteID)
}

func (uc *LoteUseCase) ownedLote(ctx context.Context, userID, id string) (*entity.Lote, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	lote, err := uc.loteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrLoteNotFound
	}
	if lote.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return lote, nil
}
