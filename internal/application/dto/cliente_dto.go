package dto

// CreateClienteRequest es la solicitud de creación de cliente.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Documento string `json:"documento"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefono  string `json:"telefono"`
}

// ClienteResponse es un cliente hacia el API.
type ClienteResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Documento string `json:"documento,omitempty"`
	Email     string `json:"email,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
}
