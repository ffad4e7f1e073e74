package domain

import "fmt"

// Códigos estables de error de dominio. Se exponen al cliente junto con el
// mensaje para soporte; nunca cambian aunque cambie el texto.
const (
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeInsufficientQuantity = "INSUFFICIENT_QUANTITY"
	CodeProductNotFound      = "PRODUCT_NOT_FOUND"
	CodeLoteNotFound         = "LOTE_NOT_FOUND"
	CodeLoteAlreadySold      = "LOTE_ALREADY_SOLD"
	CodeInvoiceNotFound      = "INVOICE_NOT_FOUND"
	CodeClienteNotFound      = "CLIENTE_NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeValidation           = "VALIDATION"
	CodeTransaction          = "TRANSACTION_ERROR"
	CodeConcurrency          = "CONCURRENCY_ERROR"
)

// Error es un error de dominio con código estable y metadatos estructurados.
// errors.Is compara por código, así los constructores con metadatos siguen
// siendo comparables contra los centinelas de abajo.
type Error struct {
	Code    string
	Message string
	Meta    map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is compara por código de dominio.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Unwrap expone la causa original (para TransactionError).
func (e *Error) Unwrap() error { return e.Cause }

// Centinelas de dominio (sin metadatos). Usar con errors.Is.
var (
	ErrInvalidQuantity = &Error{Code: CodeInvalidQuantity, Message: "cantidad inválida"}
	ErrProductNotFound = &Error{Code: CodeProductNotFound, Message: "producto no encontrado"}
	ErrLoteNotFound    = &Error{Code: CodeLoteNotFound, Message: "lote no encontrado"}
	ErrLoteAlreadySold = &Error{Code: CodeLoteAlreadySold, Message: "el lote ya fue vendido o trasladado"}
	ErrInvoiceNotFound = &Error{Code: CodeInvoiceNotFound, Message: "factura no encontrada"}
	ErrClienteNotFound = &Error{Code: CodeClienteNotFound, Message: "cliente no encontrado"}
	ErrUnauthorized    = &Error{Code: CodeUnauthorized, Message: "no autorizado"}
)

// ErrInsufficientQuantity centinela para comparar con errors.Is; los casos
// reales se construyen con InsufficientQuantity para llevar las cifras.
var ErrInsufficientQuantity = &Error{Code: CodeInsufficientQuantity, Message: "cantidad insuficiente"}

// InsufficientQuantity construye el error con lote, solicitado, disponible y etapa.
// El UI muestra estas cifras al usuario; por eso viajan en el error.
func InsufficientQuantity(loteID string, solicitado, disponible int64, etapa string) *Error {
	return &Error{
		Code:    CodeInsufficientQuantity,
		Message: fmt.Sprintf("cantidad insuficiente en el lote %s: solicitado %d, disponible %d", loteID, solicitado, disponible),
		Meta: map[string]any{
			"lote_id":    loteID,
			"solicitado": solicitado,
			"disponible": disponible,
			"etapa":      etapa,
		},
	}
}

// ValidationError construye un error de validación de campo.
func ValidationError(field string, value any, rule string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validación fallida en %q: %s", field, rule),
		Meta: map[string]any{
			"field": field,
			"value": value,
			"rule":  rule,
		},
	}
}

// ErrValidation centinela para errors.Is contra cualquier ValidationError.
var ErrValidation = &Error{Code: CodeValidation, Message: "validación fallida"}

// TransactionError envuelve un fallo ocurrido dentro de la transacción.
// La transacción ya fue abortada por el store cuando este error se propaga.
func TransactionError(operation string, cause error) *Error {
	return &Error{
		Code:    CodeTransaction,
		Message: fmt.Sprintf("transacción %q abortada", operation),
		Meta:    map[string]any{"operation": operation},
		Cause:   cause,
	}
}

// ErrTransaction centinela para errors.Is.
var ErrTransaction = &Error{Code: CodeTransaction, Message: "transacción abortada"}

// ConcurrencyError indica que otra operación concurrente ganó la carrera
// sobre la entidad: una transición de estado perdida o un conflicto de
// serialización en el store.
func ConcurrencyError(entityID, entityType string) *Error {
	return &Error{
		Code:    CodeConcurrency,
		Message: fmt.Sprintf("conflicto de concurrencia sobre %s %s", entityType, entityID),
		Meta:    map[string]any{"entity_id": entityID, "entity_type": entityType},
	}
}

// ErrConcurrency centinela para errors.Is.
var ErrConcurrency = &Error{Code: CodeConcurrency, Message: "conflicto de concurrencia"}
