package inventory

import "github.com/jhoicas/almacen-ledger/internal/domain/entity"

// CountDelta diferencia a conciliar de una línea contada.
type CountDelta struct {
	ProductID   string
	ProductCode string
	Delta       int64
	Counted     int64
}

// CountDeltas devuelve las líneas con conteo y diferencia distinta de cero (counted - actual).
// current lleva la existencia actual por producto; si falta un producto se usa la foto SysQty.
func CountDeltas(lines []*entity.CountLine, current map[string]int64) []CountDelta {
	var out []CountDelta
	for _, l := range lines {
		if l.CountedQty == nil {
			continue
		}
		base, ok := current[l.ProductID]
		if !ok {
			base = l.SysQty
		}
		d := *l.CountedQty - base
		if d == 0 {
			continue
		}
		out = append(out, CountDelta{ProductID: l.ProductID, ProductCode: l.ProductCode, Delta: d, Counted: *l.CountedQty})
	}
	return out
}

// SumAbs suma de valores absolutos de las diferencias (total del documento de ajuste).
func SumAbs(deltas []CountDelta) int64 {
	var t int64
	for _, d := range deltas {
		if d.Delta < 0 {
			t -= d.Delta
		} else {
			t += d.Delta
		}
	}
	return t
}
