package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCollaboratorRequest entrada para dar de alta un colaborador.
// Part queda fijada para siempre en la creación.
type CreateCollaboratorRequest struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Phone string          `json:"phone" validate:"required,max=20"`
	Part  decimal.Decimal `json:"part"`
	Image string          `json:"image" validate:"omitempty,max=255"`
}

// UpdateCollaboratorRequest entrada para modificar los campos no financieros.
// Part y Wallet viajan como punteros únicamente para rechazar cualquier
// intento de fijarlos: son inmutable y derivado respectivamente.
type UpdateCollaboratorRequest struct {
	Name   *string          `json:"name" validate:"omitempty,max=255"`
	Phone  *string          `json:"phone" validate:"omitempty,max=20"`
	Image  *string          `json:"image" validate:"omitempty,max=255"`
	Part   *decimal.Decimal `json:"part"`
	Wallet *decimal.Decimal `json:"wallet"`
}

// CollaboratorResponse salida de un colaborador. Wallet se calcula en cada
// lectura: caja neta del propietario × part / 100.
type CollaboratorResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Part      decimal.Decimal `json:"part"`
	Wallet    decimal.Decimal `json:"wallet"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DeleteCollaboratorResponse reporta la participación devuelta al propietario.
type DeleteCollaboratorResponse struct {
	ReturnedPart decimal.Decimal `json:"returned_part"`
}
