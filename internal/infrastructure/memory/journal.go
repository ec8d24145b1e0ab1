package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository    = (*MovementRepo)(nil)
	_ repository.MovementDocumentRepository = (*DocumentRepo)(nil)
)

// MovementRepo diario de movimientos en memoria (solo inserción).
type MovementRepo struct{ v *view }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	d, done := r.v.write()
	defer done()
	if m.DocumentID != "" {
		if _, ok := d.documents[m.DocumentID]; !ok {
			return domain.NotFound("documento", m.DocumentID)
		}
	}
	d.seq++
	m.Seq = d.seq
	d.movements = append(d.movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	d, done := r.v.read()
	defer done()
	for _, m := range d.movements {
		if m.ID == id {
			withProduct(d, &m)
			return &m, nil
		}
	}
	return nil, nil
}

func withProduct(d *data, m *entity.StockMovement) {
	if p, ok := d.products[m.ProductID]; ok {
		m.ProductCode, m.ProductName = p.Code, p.Name
	}
}

func (r *MovementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.StockMovement{}
	for _, m := range d.movements {
		switch {
		case f.WarehouseID != "" && m.WarehouseID != f.WarehouseID,
			f.ProductID != "" && m.ProductID != f.ProductID,
			f.DocumentID != "" && m.DocumentID != f.DocumentID,
			f.From != nil && m.CreatedAt.Before(*f.From),
			f.To != nil && m.CreatedAt.After(*f.To):
			continue
		}
		m := m
		withProduct(d, &m)
		out = append(out, &m)
	}
	if f.DocumentID == "" {
		sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// DocumentRepo registro de documentos en memoria.
type DocumentRepo struct{ v *view }

// LockSeries no necesita hacer nada: las transacciones en memoria ya son seriales.
func (r *DocumentRepo) LockSeries(context.Context, string) error { return nil }

func (r *DocumentRepo) MaxFolio(_ context.Context, series string) (int64, error) {
	d, done := r.v.read()
	defer done()
	var last int64
	for _, doc := range d.documents {
		if doc.Series == series && doc.Folio > last {
			last = doc.Folio
		}
	}
	return last, nil
}

func (r *DocumentRepo) Create(_ context.Context, doc *entity.MovementDocument) error {
	d, done := r.v.write()
	defer done()
	for _, other := range d.documents {
		if doc.Folio > 0 && other.Series == doc.Series && other.Folio == doc.Folio {
			return domain.Duplicate("folio %s-%d", doc.Series, doc.Folio)
		}
	}
	d.documents[doc.ID] = *doc
	return nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.MovementDocument, error) {
	d, done := r.v.read()
	defer done()
	doc, ok := d.documents[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *DocumentRepo) List(_ context.Context, f entity.DocumentFilter) ([]*entity.MovementDocument, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.MovementDocument{}
	for _, doc := range d.documents {
		switch {
		case f.WarehouseID != "" && doc.WarehouseID != f.WarehouseID,
			f.Type != "" && doc.Type != f.Type,
			f.Series != "" && doc.Series != f.Series:
			continue
		}
		doc := doc
		out = append(out, &doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		if out[i].Series != out[j].Series {
			return out[i].Series < out[j].Series
		}
		return out[i].Folio > out[j].Folio
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
