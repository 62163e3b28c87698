// Package stock implementa la contabilidad de stock como funciones puras sobre
// el libro mayor: cantidad vendida, restante, porcentaje de ventas y valor.
// Nada se cachea entre peticiones; los handlers consultan las sumas una sola
// vez por petición y derivan el resto aquí.
package stock

import "github.com/shopspring/decimal"

// Remaining devuelve la cantidad restante: stock declarado menos vendido.
// Puede ser negativa si el stock declarado fue editado por debajo del
// histórico de ventas; la corrección es una operación explícita del operador.
func Remaining(quantity, sold int64) int64 {
	return quantity - sold
}

// SalesPercentage devuelve el porcentaje vendido redondeado a 2 decimales.
// Con stock declarado cero el porcentaje es cero.
// Fórmula: round(vendido × 100 / cantidad, 2)
func SalesPercentage(quantity, sold int64) decimal.Decimal {
	if quantity == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sold).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(quantity)).
		Round(2)
}

// IsLow indica stock bajo: porcentaje vendido ≥ umbral del usuario.
func IsLow(quantity, sold int64, threshold int) bool {
	return SalesPercentage(quantity, sold).GreaterThanOrEqual(decimal.NewFromInt(int64(threshold)))
}

// Value devuelve el valor del stock restante: restante × precio de venta.
// Un restante negativo produce un valor negativo; no se recorta en lectura.
func Value(quantity, sold int64, salePrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(Remaining(quantity, sold)).Mul(salePrice)
}
