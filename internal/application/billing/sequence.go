package billing

import (
	"context"
	"fmt"

	"github.com/granjapro/granja-api/internal/domain/repository"
)

// SequenceGenerator emite el consecutivo de factura formateado, ej. "FAC-0007".
// Solo se invoca dentro de la transacción de emisión: si la transacción se
// aborta, el incremento del contador se deshace y no quedan huecos.
type SequenceGenerator struct {
	prefix string
}

// NewSequenceGenerator construye el generador con el prefijo configurado.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "FAC"
	}
	return &SequenceGenerator{prefix: prefix}
}

// NextNumber bloquea el contador del usuario, formatea el número y escribe
// contador+1, todo con los repos de la transacción en curso. Dos emisiones
// concurrentes del mismo usuario serializan en el bloqueo de la fila.
func (g *SequenceGenerator) NextNumber(ctx context.Context, seqRepo repository.SequenceRepository, userID string) (string, error) {
	n, err := seqRepo.GetForUpdate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("leer consecutivo: %w", err)
	}
	if err := seqRepo.Set(ctx, userID, n+1); err != nil {
		return "", fmt.Errorf("avanzar consecutivo: %w", err)
	}
	return fmt.Sprintf("%s-%04d", g.prefix, n), nil
}
