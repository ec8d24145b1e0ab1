package inventory

import "github.com/shopspring/decimal"

// BaseUnits convierte una cantidad en la unidad del producto a unidades base.
// Un factor cero o negativo se trata como 1.
func BaseUnits(qty int64, factor decimal.Decimal) decimal.Decimal {
	if factor.LessThanOrEqual(decimal.Zero) {
		factor = decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(qty).Mul(factor)
}
