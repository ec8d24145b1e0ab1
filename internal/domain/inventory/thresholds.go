package inventory

import (
	"sort"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// IsLowStock (umbral > 0 y qty <= umbral) o qty == 0.
func IsLowStock(level entity.StockLevel) bool {
	return (level.Threshold > 0 && level.Quantity <= level.Threshold) || level.Quantity == 0
}

// LowStock filtra los niveles en stock bajo: primero agotados, luego por código.
func LowStock(levels []*entity.StockLevel) []*entity.StockLevel {
	out := make([]*entity.StockLevel, 0)
	for _, l := range levels {
		if IsLowStock(*l) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OutOfStock() != out[j].OutOfStock() {
			return out[i].OutOfStock()
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// PurchaseSuggestions umbral > 0 y umbral > qty; déficit = umbral - qty.
// Orden: déficit descendente, luego código.
func PurchaseSuggestions(levels []*entity.StockLevel) []*entity.PurchaseSuggestion {
	out := make([]*entity.PurchaseSuggestion, 0)
	for _, l := range levels {
		if l.Threshold <= 0 || l.Threshold <= l.Quantity {
			continue
		}
		out = append(out, &entity.PurchaseSuggestion{
			ProductID: l.ProductID,
			Code:      l.Code,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Threshold: l.Threshold,
			Deficit:   l.Threshold - l.Quantity,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Deficit != out[j].Deficit {
			return out[i].Deficit > out[j].Deficit
		}
		return out[i].Code < out[j].Code
	})
	return out
}
