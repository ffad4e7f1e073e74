package repository

import "context"

// SequenceRepository define el puerto del consecutivo de facturación por usuario.
// Ambas operaciones deben ejecutarse dentro de la misma transacción que emite
// la factura: así un rollback tampoco consume el número.
type SequenceRepository interface {
	// GetForUpdate bloquea la fila del usuario y devuelve el siguiente valor
	// a emitir. Si no existe, la crea con valor 1.
	GetForUpdate(ctx context.Context, userID string) (int64, error)
	// Set escribe el siguiente valor a emitir (valor actual + 1).
	Set(ctx context.Context, userID string, next int64) error
}
