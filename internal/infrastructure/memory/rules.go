package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.RuleRepository         = (*RuleRepo)(nil)
	_ repository.CountRepository        = (*CountRepo)(nil)
	_ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)
)

// RuleRepo umbrales y reglas de reabastecimiento en memoria.
type RuleRepo struct{ v *view }

func (r *RuleRepo) SetThreshold(_ context.Context, rule *entity.ThresholdRule) error {
	d, done := r.v.write()
	defer done()
	k := pairKey{rule.ProductID, rule.WarehouseID}
	if _, ok := d.links[k]; !ok {
		return domain.NotFound("vínculo", rule.ProductID+":"+rule.WarehouseID)
	}
	d.thresholds[k] = *rule
	return nil
}

func (r *RuleRepo) ListThresholds(_ context.Context, warehouseID string) ([]*entity.ThresholdRule, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.ThresholdRule{}
	for k, t := range d.thresholds {
		if k.warehouse == warehouseID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return d.products[out[i].ProductID].Code < d.products[out[j].ProductID].Code
	})
	return out, nil
}

func (r *RuleRepo) UpsertReplenishment(_ context.Context, rule *entity.ReplenishmentRule) error {
	d, done := r.v.write()
	defer done()
	k := pairKey{rule.ProductID, rule.WarehouseID}
	if _, ok := d.links[k]; !ok {
		return domain.NotFound("vínculo", rule.ProductID+":"+rule.WarehouseID)
	}
	d.rules[k] = *rule
	return nil
}

func (r *RuleRepo) DeleteReplenishment(_ context.Context, productID, warehouseID string) error {
	d, done := r.v.write()
	defer done()
	delete(d.rules, pairKey{productID, warehouseID})
	return nil
}

func (r *RuleRepo) ListReplenishment(_ context.Context, warehouseID string) ([]*entity.ReplenishmentRule, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.ReplenishmentRule{}
	for k, rule := range d.rules {
		if k.warehouse != warehouseID {
			continue
		}
		rule := rule
		p := d.products[k.product]
		rule.ProductCode, rule.ProductName = p.Code, p.Name
		out = append(out, &rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

// CountRepo sesiones de conteo en memoria.
type CountRepo struct{ v *view }

func (r *CountRepo) CreateSession(_ context.Context, s *entity.CountSession, lines []*entity.CountLine) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.warehouses[s.WarehouseID]; !ok {
		return domain.NotFound("bodega", s.WarehouseID)
	}
	d.sessions[s.ID] = *s
	ls := make([]entity.CountLine, 0, len(lines))
	for _, l := range lines {
		ls = append(ls, *l)
	}
	d.lines[s.ID] = copyLines(ls)
	return nil
}

func (r *CountRepo) GetSession(_ context.Context, id string) (*entity.CountSession, error) {
	d, done := r.v.read()
	defer done()
	s, ok := d.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *CountRepo) GetSessionForUpdate(ctx context.Context, id string) (*entity.CountSession, error) {
	return r.GetSession(ctx, id)
}

func (r *CountRepo) ListSessions(_ context.Context, warehouseID string) ([]*entity.CountSession, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.CountSession{}
	for _, s := range d.sessions {
		if warehouseID == "" || s.WarehouseID == warehouseID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CountRepo) ListLines(_ context.Context, sessionID string) ([]*entity.CountLine, error) {
	d, done := r.v.read()
	defer done()
	ls := copyLines(d.lines[sessionID])
	out := make([]*entity.CountLine, 0, len(ls))
	for i := range ls {
		l := &ls[i]
		if p, ok := d.products[l.ProductID]; ok {
			l.ProductCode, l.ProductName = p.Code, p.Name
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

func (r *CountRepo) SetCounted(_ context.Context, sessionID, productID string, counted int64) error {
	d, done := r.v.write()
	defer done()
	ls := d.lines[sessionID]
	for i := range ls {
		if ls[i].ProductID == productID {
			v := counted
			ls[i].CountedQty = &v
			return nil
		}
	}
	return domain.NotFound("línea de conteo", productID)
}

func (r *CountRepo) Close(_ context.Context, sessionID, documentID string, closedAt time.Time) error {
	d, done := r.v.write()
	defer done()
	s, ok := d.sessions[sessionID]
	if !ok {
		return domain.NotFound("sesión de conteo", sessionID)
	}
	s.Status = entity.CountStatusClosed
	s.DocumentID = documentID
	s.ClosedAt = &closedAt
	d.sessions[sessionID] = s
	return nil
}

// CounterpartyRepo proveedores y clientes en memoria.
type CounterpartyRepo struct{ v *view }

func (r *CounterpartyRepo) Create(_ context.Context, c *entity.Counterparty) error {
	d, done := r.v.write()
	defer done()
	d.counterparties[c.ID] = *c
	return nil
}

func (r *CounterpartyRepo) Update(_ context.Context, c *entity.Counterparty) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.counterparties[c.ID]; !ok {
		return domain.NotFound("tercero", c.ID)
	}
	d.counterparties[c.ID] = *c
	return nil
}

func (r *CounterpartyRepo) GetByID(_ context.Context, id string) (*entity.Counterparty, error) {
	d, done := r.v.read()
	defer done()
	c, ok := d.counterparties[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CounterpartyRepo) List(_ context.Context, kind string) ([]*entity.Counterparty, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.Counterparty{}
	for _, c := range d.counterparties {
		if kind == "" || c.Kind == kind {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CounterpartyRepo) Delete(_ context.Context, id string) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.counterparties[id]; !ok {
		return domain.NotFound("tercero", id)
	}
	delete(d.counterparties, id)
	return nil
}
