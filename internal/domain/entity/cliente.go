package entity

import "time"

// Cliente representa un comprador (facturación).
type Cliente struct {
	ID        string
	UserID    string
	Nombre    string
	Documento string // NIT o cédula
	Email     string
	Telefono  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
