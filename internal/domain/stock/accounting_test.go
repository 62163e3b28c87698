package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Contabilidad de stock: la cantidad registrada de un artículo nunca se muta
// por las ventas. Lo restante, el porcentaje vendido y el valor de inventario
// se derivan siempre de (cantidad, vendido) en el momento de la lectura.
// ──────────────────────────────────────────────────────────────────────────────

func TestRemaining(t *testing.T) {
	assert.Equal(t, int64(15), stock.Remaining(100, 85))
	assert.Equal(t, int64(100), stock.Remaining(100, 0))
	assert.Equal(t, int64(0), stock.Remaining(50, 50))
}

// TestRemaining_Negativo documenta que un stock sobrevendido queda negativo
// en vez de saturarse en cero; la tarea de mantenimiento lo corrige después.
func TestRemaining_Negativo(t *testing.T) {
	assert.Equal(t, int64(-5), stock.Remaining(10, 15))
}

func TestSalesPercentage(t *testing.T) {
	pct := stock.SalesPercentage(100, 85)
	assert.True(t, pct.Equal(decimal.NewFromInt(85)), "85 de 100 vendidos = 85%%, got %s", pct)
}

func TestSalesPercentage_Redondeo(t *testing.T) {
	// 1 de 3 vendidos = 33.333... que se redondea a 2 decimales.
	pct := stock.SalesPercentage(3, 1)
	assert.Equal(t, "33.33", pct.StringFixed(2))
}

// TestSalesPercentage_CantidadCero evita la división por cero: un artículo
// sin cantidad registrada reporta 0%% vendido.
func TestSalesPercentage_CantidadCero(t *testing.T) {
	assert.True(t, stock.SalesPercentage(0, 0).IsZero())
	assert.True(t, stock.SalesPercentage(0, 7).IsZero())
}

func TestIsLow_UmbralInclusivo(t *testing.T) {
	// Con umbral 80, exactamente 80%% vendido ya cuenta como stock bajo.
	assert.True(t, stock.IsLow(100, 80, 80))
	assert.True(t, stock.IsLow(100, 85, 80))
	assert.False(t, stock.IsLow(100, 79, 80))
}

func TestIsLow_CantidadCero(t *testing.T) {
	assert.False(t, stock.IsLow(0, 0, 80), "sin cantidad registrada nunca hay alerta")
}

func TestValue(t *testing.T) {
	// 15 restantes a 2500 cada uno.
	v := stock.Value(100, 85, decimal.NewFromInt(2500))
	assert.True(t, v.Equal(decimal.NewFromInt(37500)), "got %s", v)
}

// TestValue_SobreventaNegativa un restante negativo produce un valor negativo
// sin recorte; la lectura refleja el libro mayor tal cual.
func TestValue_SobreventaNegativa(t *testing.T) {
	v := stock.Value(10, 15, decimal.NewFromInt(1000))
	assert.True(t, v.Equal(decimal.NewFromInt(-5000)), "got %s", v)
}
