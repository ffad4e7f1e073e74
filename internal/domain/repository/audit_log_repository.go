package repository

import (
	"context"

	"github.com/granjapro/granja-api/internal/domain/entity"
)

// AuditLogRepository define el sumidero de auditoría (fire-and-forget).
// Un fallo al registrar nunca afecta la operación principal.
type AuditLogRepository interface {
	Record(ctx context.Context, log *entity.AuditLog) error
}
