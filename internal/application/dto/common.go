package dto

// ErrorResponse es la forma estándar de error hacia el cliente: código
// estable para soporte, mensaje localizado y metadatos cuando aplican
// (por ejemplo, las cifras de una cantidad insuficiente).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}
