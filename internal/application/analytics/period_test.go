package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// Reloj fijo para todos los tests de rango: un viernes cualquiera.
var testNow = time.Date(2025, time.November, 14, 15, 30, 0, 0, time.UTC)

// ── rangos de período ─────────────────────────────────────────────────────────

func TestDateRange_Today(t *testing.T) {
	start, end, err := DateRange(PeriodToday, "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-14", start.Format(dateLayout))
	assert.Equal(t, "2025-11-14", end.Format(dateLayout))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
}

func TestDateRange_7Dias(t *testing.T) {
	// Ventana de calendario que incluye el día actual: 7 días en total.
	start, _, err := DateRange(Period7Days, "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-08", start.Format(dateLayout))
}

func TestDateRange_30Dias(t *testing.T) {
	start, _, err := DateRange(Period30Days, "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-16", start.Format(dateLayout))
}

func TestDateRange_Year(t *testing.T) {
	start, _, err := DateRange(PeriodYear, "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", start.Format(dateLayout))
}

func TestDateRange_All(t *testing.T) {
	start, _, err := DateRange(PeriodAll, "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2015-11-14", start.Format(dateLayout))
}

func TestDateRange_Custom(t *testing.T) {
	start, end, err := DateRange(PeriodCustom, "2025-03-01", "2025-03-15", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", start.Format(dateLayout))
	assert.Equal(t, "2025-03-15", end.Format(dateLayout))
}

func TestDateRange_CustomIncompleto(t *testing.T) {
	_, _, err := DateRange(PeriodCustom, "2025-03-01", "", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = DateRange(PeriodCustom, "not-a-date", "2025-03-15", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDateRange_DesconocidoCaeEn30(t *testing.T) {
	start, _, err := DateRange("whatever", "", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-16", start.Format(dateLayout))
}

// ── elección de bucket ────────────────────────────────────────────────────────

func TestBucketFor(t *testing.T) {
	cases := []struct {
		name string
		days int
		want string
	}{
		{"una semana por día", 7, repository.BucketDay},
		{"exactamente 30 por día", 30, repository.BucketDay},
		{"dos meses por semana", 60, repository.BucketWeek},
		{"exactamente 90 por semana", 90, repository.BucketWeek},
		{"un año por mes", 365, repository.BucketMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := startOfDay(testNow.AddDate(0, 0, -tc.days))
			assert.Equal(t, tc.want, BucketFor(start, endOfDay(testNow)))
		})
	}
}

func TestWalletBucketFor(t *testing.T) {
	// La serie de caja acumulada solo conoce día y mes.
	start := startOfDay(testNow.AddDate(0, 0, -60))
	assert.Equal(t, repository.BucketDay, walletBucketFor(start, endOfDay(testNow)))

	start = startOfDay(testNow.AddDate(0, 0, -120))
	assert.Equal(t, repository.BucketMonth, walletBucketFor(start, endOfDay(testNow)))
}

// ── ventana previa ────────────────────────────────────────────────────────────

func TestPreviousWindow_MismaDuracion(t *testing.T) {
	start, end, err := DateRange(Period30Days, "", "", testNow)
	require.NoError(t, err)

	prevStart, prevEnd := previousWindow(Period30Days, start, end)
	assert.Equal(t, "2025-10-15", prevEnd.Format(dateLayout), "la ventana previa termina justo antes de la actual")
	assert.Equal(t, "2025-09-16", prevStart.Format(dateLayout), "ambas ventanas abarcan 30 días de calendario")
}

func TestPreviousWindow_Year(t *testing.T) {
	start, end, err := DateRange(PeriodYear, "", "", testNow)
	require.NoError(t, err)

	prevStart, prevEnd := previousWindow(PeriodYear, start, end)
	assert.Equal(t, "2024-01-01", prevStart.Format(dateLayout), "year compara contra el año anterior completo")
	assert.Equal(t, "2024-12-31", prevEnd.Format(dateLayout))
}

// ── política de cambio porcentual ─────────────────────────────────────────────

func TestChangePercent(t *testing.T) {
	assert.Equal(t, "25", changePercent(decimal.NewFromInt(125), decimal.NewFromInt(100)).String())
	assert.Equal(t, "-50", changePercent(decimal.NewFromInt(50), decimal.NewFromInt(100)).String())
}

func TestChangePercent_PrevioCero(t *testing.T) {
	assert.Equal(t, "100", changePercent(decimal.NewFromInt(42), decimal.Zero).String(),
		"datos nuevos sin histórico se reportan como +100")
	assert.Equal(t, "0", changePercent(decimal.Zero, decimal.Zero).String())
}

func TestNetChangePercent_PrevioCero(t *testing.T) {
	assert.Equal(t, "100", netChangePercent(decimal.NewFromInt(10), decimal.Zero).String())
	assert.Equal(t, "-100", netChangePercent(decimal.NewFromInt(-10), decimal.Zero).String())
	assert.Equal(t, "0", netChangePercent(decimal.Zero, decimal.Zero).String())
}

func TestNetChangePercent_DivisorAbsoluto(t *testing.T) {
	// De −200 a 100: el divisor es |previo| para que el signo siga al numerador.
	got := netChangePercent(decimal.NewFromInt(100), decimal.NewFromInt(-200))
	assert.Equal(t, "150", got.String())
}

func TestChangeType(t *testing.T) {
	assert.Equal(t, "increase", changeType(decimal.NewFromInt(5)))
	assert.Equal(t, "increase", changeType(decimal.Zero))
	assert.Equal(t, "decrease", changeType(decimal.NewFromInt(-5)))
}
