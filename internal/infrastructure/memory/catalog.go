package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.codes[p.Code]; ok {
		return domain.Duplicate("producto %q", p.Code)
	}
	d.products[p.ID] = *p
	d.codes[p.Code] = p.ID
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	d, done := r.v.write()
	defer done()
	old, ok := d.products[p.ID]
	if !ok {
		return domain.NotFound("producto", p.ID)
	}
	if old.Code != p.Code {
		if _, taken := d.codes[p.Code]; taken {
			return domain.Duplicate("producto %q", p.Code)
		}
		delete(d.codes, old.Code)
		d.codes[p.Code] = p.ID
	}
	d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	p, ok := d.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	id, ok := d.codes[code]
	if !ok {
		return nil, nil
	}
	p := d.products[id]
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	d, done := r.v.read()
	defer done()
	out := make([]*entity.Product, 0, len(d.products))
	for _, p := range d.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ProductRepo) ListCategories(_ context.Context) ([]string, error) {
	d, done := r.v.read()
	defer done()
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range d.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepo) AddAlias(_ context.Context, a *entity.ProductAlias) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.aliases[a.Alias]; ok {
		return domain.Duplicate("alias %q", a.Alias)
	}
	if _, ok := d.products[a.ProductID]; !ok {
		return domain.NotFound("producto", a.ProductID)
	}
	d.aliases[a.Alias] = *a
	return nil
}

func (r *ProductRepo) RemoveAlias(_ context.Context, alias string) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.aliases[alias]; !ok {
		return domain.NotFound("alias", alias)
	}
	delete(d.aliases, alias)
	return nil
}

func (r *ProductRepo) ListAliases(_ context.Context, productID string) ([]*entity.ProductAlias, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.ProductAlias{}
	for _, a := range d.aliases {
		if a.ProductID == productID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}

func (r *ProductRepo) ResolveAlias(_ context.Context, alias string) (string, error) {
	d, done := r.v.read()
	defer done()
	return d.aliases[alias].ProductID, nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ v *view }

func nameTaken(d *data, name, exceptID string) bool {
	for _, w := range d.warehouses {
		if w.Name == name && w.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	d, done := r.v.write()
	defer done()
	if nameTaken(d, w.Name, "") {
		return domain.Duplicate("bodega %q", w.Name)
	}
	d.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.warehouses[w.ID]; !ok {
		return domain.NotFound("bodega", w.ID)
	}
	if nameTaken(d, w.Name, w.ID) {
		return domain.Duplicate("bodega %q", w.Name)
	}
	d.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	d, done := r.v.read()
	defer done()
	w, ok := d.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	d, done := r.v.read()
	defer done()
	for _, w := range d.warehouses {
		if w.Name == name {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	d, done := r.v.read()
	defer done()
	out := make([]*entity.Warehouse, 0, len(d.warehouses))
	for _, w := range d.warehouses {
		w := w
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina la bodega y en cascada vínculos, stock, reglas y conteos.
func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	d, done := r.v.write()
	defer done()
	delete(d.warehouses, id)
	for k := range d.links {
		if k.warehouse == id {
			delete(d.links, k)
			delete(d.stock, k)
		}
	}
	for k := range d.thresholds {
		if k.warehouse == id {
			delete(d.thresholds, k)
		}
	}
	for k := range d.rules {
		if k.warehouse == id {
			delete(d.rules, k)
		}
	}
	for sid, s := range d.sessions {
		if s.WarehouseID == id {
			delete(d.sessions, sid)
			delete(d.lines, sid)
		}
	}
	return nil
}
