package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User es el propietario de un inventario: artículos, transacciones y colaboradores.
// CompanyShare es su participación propia no asignada (0..100); el invariante
// CompanyShare + Σ Collaborator.Part == 100 se mantiene en cada alta/baja de colaborador.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	CompanyShare decimal.Decimal // participación propia, arranca en 100
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSetting preferencias por usuario. LowStockThreshold es el umbral (%)
// a partir del cual un artículo o variación se considera en stock bajo.
type UserSetting struct {
	UserID            string
	Currency          string // FCFA, EUR, USD, XOF
	LowStockThreshold int    // 0..100, por defecto 80
	Language          string // fr, en
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Valores por defecto de UserSetting.
const (
	DefaultCurrency          = "FCFA"
	DefaultLowStockThreshold = 80
	DefaultLanguage          = "fr"
)

// DefaultSettings construye las preferencias iniciales de un usuario.
func DefaultSettings(userID string, now time.Time) *UserSetting {
	return &UserSetting{
		UserID:            userID,
		Currency:          DefaultCurrency,
		LowStockThreshold: DefaultLowStockThreshold,
		Language:          DefaultLanguage,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
