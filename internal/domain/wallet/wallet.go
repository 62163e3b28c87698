// Package wallet implementa el reparto de caja entre propietario y
// colaboradores. La caja calculada es ventas menos gastos; cada parte recibe
// su porcentaje, redondeado a 2 decimales con aritmética decimal exacta para
// evitar deriva de redondeo entre recomputaciones.
package wallet

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Calculated devuelve la caja neta: total de ventas menos total de gastos.
func Calculated(totalSales, totalExpenses decimal.Decimal) decimal.Decimal {
	return totalSales.Sub(totalExpenses)
}

// Share devuelve la porción de la caja que corresponde a una participación
// (porcentaje 0..100): calculated × part / 100, redondeado a 2 decimales.
// Se aplica idéntica al CompanyShare del propietario y al Part de cada
// colaborador: el wallet del propietario también es una rebanada ponderada,
// no el total.
func Share(calculated, part decimal.Decimal) decimal.Decimal {
	return calculated.Mul(part).Div(hundred).Round(2)
}
