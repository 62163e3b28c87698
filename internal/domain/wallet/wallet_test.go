package wallet_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gestockhq/gestock-api/internal/domain/wallet"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reparto de caja: caja calculada = ventas − gastos, y cada participación
// (propietario o colaborador) recibe su porcentaje redondeado a 2 decimales.
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculated(t *testing.T) {
	c := wallet.Calculated(decimal.NewFromInt(1000), decimal.NewFromInt(400))
	assert.True(t, c.Equal(decimal.NewFromInt(600)), "got %s", c)
}

// TestCalculated_Negativa los gastos pueden superar las ventas; la caja
// calculada queda negativa y los repartos también.
func TestCalculated_Negativa(t *testing.T) {
	c := wallet.Calculated(decimal.NewFromInt(100), decimal.NewFromInt(350))
	assert.True(t, c.Equal(decimal.NewFromInt(-250)), "got %s", c)
}

func TestShare(t *testing.T) {
	calculated := wallet.Calculated(decimal.NewFromInt(1000), decimal.NewFromInt(400))
	part := decimal.NewFromInt(30)

	got := wallet.Share(calculated, part)
	assert.Equal(t, "180.00", got.StringFixed(2))
}

func TestShare_Redondeo(t *testing.T) {
	// 33.33% de 100.00 = 33.333 → 33.33 tras redondear a 2 decimales.
	got := wallet.Share(decimal.NewFromInt(100), decimal.RequireFromString("33.33"))
	assert.Equal(t, "33.33", got.StringFixed(2))
}

func TestShare_ParteCero(t *testing.T) {
	got := wallet.Share(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, got.IsZero())
}

// TestShare_SumaPartes la suma de los repartos de participaciones que
// totalizan 100% no se desvía de la caja calculada en más de 0.01 por
// participación (error máximo de redondeo).
func TestShare_SumaPartes(t *testing.T) {
	calculated := decimal.RequireFromString("1234.57")
	parts := []decimal.Decimal{
		decimal.RequireFromString("33.33"),
		decimal.RequireFromString("33.33"),
		decimal.RequireFromString("33.34"),
	}

	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(wallet.Share(calculated, p))
	}

	diff := sum.Sub(calculated).Abs()
	maxDrift := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(len(parts))))
	assert.True(t, diff.LessThanOrEqual(maxDrift),
		"la deriva de redondeo %s supera el máximo %s", diff, maxDrift)
}

func TestShare_CajaNegativa(t *testing.T) {
	got := wallet.Share(decimal.NewFromInt(-200), decimal.NewFromInt(50))
	assert.Equal(t, "-100.00", got.StringFixed(2))
}
