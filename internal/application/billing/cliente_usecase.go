package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/granjapro/granja-api/internal/application/dto"
	"github.com/granjapro/granja-api/internal/domain"
	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

// ClienteUseCase administra clientes de facturación.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente del usuario.
func (uc *ClienteUseCase) Create(ctx context.Context, userID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Nombre == "" {
		return nil, domain.ValidationError("nombre", in.Nombre, "requerido")
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		UserID:    userID,
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Email:     in.Email,
		Telefono:  in.Telefono,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// List lista los clientes del usuario.
func (uc *ClienteUseCase) List(ctx context.Context, userID string) ([]*dto.ClienteResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	clientes, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, clienteToResponse(c))
	}
	return out, nil
}

func clienteToResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Email:     c.Email,
		Telefono:  c.Telefono,
	}
}
