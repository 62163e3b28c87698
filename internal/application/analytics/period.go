package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// Claves de período aceptadas por todos los endpoints analíticos.
const (
	PeriodToday  = "today"
	Period7Days  = "7"
	Period30Days = "30"
	PeriodYear   = "year"
	PeriodAll    = "all"
	PeriodCustom = "custom"
)

const dateLayout = "2006-01-02"

// DateRange traduce la clave de período a un rango [inicio de día, fin de
// día]. "7" y "30" son ventanas de calendario que incluyen el día actual,
// "year" arranca el 1 de enero y "all" retrocede 10 años. "custom" exige
// start y end en formato YYYY-MM-DD.
func DateRange(period, startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	end := endOfDay(now)

	switch period {
	case PeriodCustom:
		if startDate == "" || endDate == "" {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		s, err := time.ParseInLocation(dateLayout, startDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		e, err := time.ParseInLocation(dateLayout, endDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		return startOfDay(s), endOfDay(e), nil
	case PeriodToday:
		return startOfDay(now), end, nil
	case Period7Days:
		return startOfDay(now.AddDate(0, 0, -6)), end, nil
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), end, nil
	case PeriodAll:
		return startOfDay(now.AddDate(-10, 0, 0)), end, nil
	case Period30Days:
		return startOfDay(now.AddDate(0, 0, -29)), end, nil
	default:
		// Período desconocido o vacío: últimos 30 días.
		return startOfDay(now.AddDate(0, 0, -29)), end, nil
	}
}

// BucketFor elige la granularidad de las series según la longitud del rango:
// día hasta 30 días, semana ISO hasta 90, mes de ahí en adelante.
func BucketFor(start, end time.Time) string {
	days := daysBetween(start, end)
	switch {
	case days <= 30:
		return repository.BucketDay
	case days <= 90:
		return repository.BucketWeek
	default:
		return repository.BucketMonth
	}
}

// walletBucketFor la serie de caja acumulada solo conoce día y mes: diaria
// hasta 90 días, mensual para rangos mayores.
func walletBucketFor(start, end time.Time) string {
	if daysBetween(start, end) > 90 {
		return repository.BucketMonth
	}
	return repository.BucketDay
}

// previousWindow devuelve la ventana inmediatamente anterior de igual
// duración. Para "year" la comparación es contra el año calendario anterior
// completo. "all" no tiene ventana previa; el llamador lo trata aparte.
func previousWindow(period string, start, end time.Time) (time.Time, time.Time) {
	if period == PeriodYear {
		prevYear := start.AddDate(-1, 0, 0)
		prevStart := time.Date(prevYear.Year(), time.January, 1, 0, 0, 0, 0, start.Location())
		prevEnd := endOfDay(time.Date(prevYear.Year(), time.December, 31, 0, 0, 0, 0, start.Location()))
		return prevStart, prevEnd
	}
	days := daysBetween(start, end)
	prevEnd := endOfDay(start.AddDate(0, 0, -1))
	prevStart := startOfDay(start.AddDate(0, 0, -1-days))
	return prevStart, prevEnd
}

// changePercent variación porcentual entre períodos con la política de
// previo-cero: sin datos previos, un valor actual positivo se reporta como
// +100 y la ausencia de ambos como 0. Redondeado a 2 decimales.
func changePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
}

// netChangePercent como changePercent pero para el revenu neto, que puede ser
// negativo en ambos lados: el previo cero con actual negativo da −100 y el
// divisor es |previo| para que el signo del cambio siga al numerador.
func netChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		switch {
		case current.IsPositive():
			return decimal.NewFromInt(100)
		case current.IsNegative():
			return decimal.NewFromInt(-100)
		default:
			return decimal.Zero
		}
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
}

func changeType(change decimal.Decimal) string {
	if change.IsNegative() {
		return "decrease"
	}
	return "increase"
}

// daysBetween días de calendario completos entre dos instantes, truncando
// como hace la aritmética de fechas del resto del sistema.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
