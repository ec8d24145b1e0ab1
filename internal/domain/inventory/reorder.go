package inventory

import (
	"sort"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// ValidateReplenishment normaliza el múltiplo y valida los parámetros de la regla.
func ValidateReplenishment(rule *entity.ReplenishmentRule) error {
	if rule.Multiple < 1 {
		rule.Multiple = 1
	}
	switch {
	case rule.MinQty < 0, rule.MaxQty < 0, rule.ReorderPoint < 0, rule.LeadTimeDays < 0:
		return domain.Invalid("parámetros de reabastecimiento negativos")
	case rule.MaxQty > 0 && rule.MinQty > rule.MaxQty:
		return domain.Invalid("mínimo %d mayor que máximo %d", rule.MinQty, rule.MaxQty)
	}
	return nil
}

// ReorderQty cantidad a pedir: si qty <= punto de pedido (o bajo el mínimo) se repone hasta
// el máximo, redondeando hacia arriba al múltiplo. 0 si no corresponde pedir.
func ReorderQty(qty int64, rule entity.ReplenishmentRule) int64 {
	trigger := rule.ReorderPoint
	if rule.MinQty > trigger {
		trigger = rule.MinQty
	}
	if trigger <= 0 || qty > trigger {
		return 0
	}
	target := rule.MaxQty
	if target < trigger {
		target = trigger
	}
	need := target - qty
	if need <= 0 {
		return 0
	}
	mult := rule.Multiple
	if mult < 1 {
		mult = 1
	}
	if rem := need % mult; rem != 0 {
		need += mult - rem
	}
	return need
}

// ReorderProposals cruza niveles con reglas; niveles sin regla se omiten.
// Orden: cantidad a pedir descendente, luego código.
func ReorderProposals(levels []*entity.StockLevel, rules []*entity.ReplenishmentRule) []*entity.ReorderProposal {
	byProduct := make(map[string]*entity.ReplenishmentRule, len(rules))
	for _, r := range rules {
		byProduct[r.ProductID] = r
	}
	out := make([]*entity.ReorderProposal, 0)
	for _, l := range levels {
		rule, ok := byProduct[l.ProductID]
		if !ok {
			continue
		}
		q := ReorderQty(l.Quantity, *rule)
		if q == 0 {
			continue
		}
		out = append(out, &entity.ReorderProposal{
			ProductID:    l.ProductID,
			Code:         l.Code,
			Name:         l.Name,
			Quantity:     l.Quantity,
			ReorderPoint: rule.ReorderPoint,
			MaxQty:       rule.MaxQty,
			OrderQty:     q,
			LeadTimeDays: rule.LeadTimeDays,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderQty != out[j].OrderQty {
			return out[i].OrderQty > out[j].OrderQty
		}
		return out[i].Code < out[j].Code
	})
	return out
}
