package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/granjapro/granja-api/internal/domain/entity"
	"github.com/granjapro/granja-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo escribe registros de auditoría. Los casos de uso lo invocan
// fire-and-forget, fuera de la transacción principal.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar el pool (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Record persiste el registro de auditoría.
func (r *AuditLogRepo) Record(ctx context.Context, log *entity.AuditLog) error {
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return fmt.Errorf("marshal audit meta: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, actor_id, accion, entidad, entidad_id, meta, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.q.Exec(ctx, query,
		log.ID, log.ActorID, log.Accion, log.Entidad, log.EntidadID, metaJSON, log.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
