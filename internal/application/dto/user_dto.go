package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada de registro de un nuevo propietario.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Username  string `json:"username" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido más el perfil del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse perfil del propietario con todos sus agregados derivados,
// recomputados del libro mayor en cada lectura.
type UserResponse struct {
	ID                     string          `json:"id"`
	FirstName              string          `json:"first_name"`
	LastName               string          `json:"last_name"`
	Username               string          `json:"username"`
	Email                  string          `json:"email"`
	CompanyShare           decimal.Decimal `json:"company_share"`
	ProfileImage           string          `json:"profile_image,omitempty"`
	TotalArticles          int64           `json:"total_articles"`
	TotalLowStock          int64           `json:"total_low_stock"`
	TotalStockValue        decimal.Decimal `json:"total_stock_value"`
	TotalRemainingQuantity int64           `json:"total_remaining_quantity"`
	TotalSale              decimal.Decimal `json:"total_sale"`
	TotalExpense           decimal.Decimal `json:"total_expense"`
	CalculatedWallet       decimal.Decimal `json:"calculated_wallet"`
	Wallet                 decimal.Decimal `json:"wallet"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// UpdateProfileRequest entrada para modificar el perfil.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=255"`
	LastName     *string `json:"last_name" validate:"omitempty,max=255"`
	Username     *string `json:"username" validate:"omitempty,max=255"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=255"`
}

// UpdatePasswordRequest entrada para cambiar la contraseña.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// SettingsResponse preferencias del usuario.
type SettingsResponse struct {
	UserID            string `json:"user_id"`
	Currency          string `json:"currency"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	Language          string `json:"language"`
}

// UpdateSettingsRequest entrada para modificar las preferencias.
type UpdateSettingsRequest struct {
	Currency          *string `json:"currency" validate:"omitempty,oneof=FCFA EUR USD XOF"`
	LowStockThreshold *int    `json:"low_stock_threshold" validate:"omitempty,min=0,max=100"`
	Language          *string `json:"language" validate:"omitempty,oneof=fr en"`
}
