package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(ctx context.Context, cliente *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Cliente, error)
}
