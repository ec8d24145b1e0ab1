package inventory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// movementMeta etiquetas de trazabilidad que el libro guarda sin interpretar.
type movementMeta struct {
	Note       string
	DocumentID string
	RefID      string
	UserID     string
}

// ledgerTx operaciones primitivas sobre repositorios atados a una transacción.
// Todas asumen que el llamador hace Commit/Rollback.
type ledgerTx struct {
	r         Repos
	now       time.Time
	movements []*entity.StockMovement
	documents []*entity.MovementDocument
}

func newLedgerTx(r Repos, now time.Time) *ledgerTx {
	return &ledgerTx{r: r, now: now}
}

// product resuelve un código o alias al producto del catálogo.
func (l *ledgerTx) product(ctx context.Context, ref string) (*entity.Product, error) {
	return resolveProduct(ctx, l.r, ref)
}

func resolveProduct(ctx context.Context, r Repos, ref string) (*entity.Product, error) {
	code := domaininv.NormalizeCode(ref)
	if code == "" {
		return nil, domain.Invalid("código de producto vacío")
	}
	p, err := r.Products.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	id, err := r.Products.ResolveAlias(ctx, code)
	if err != nil {
		return nil, err
	}
	if id != "" {
		p, err = r.Products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, domain.NotFound("producto", code)
}

func requireWarehouse(ctx context.Context, r Repos, id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, domain.Invalid("bodega vacía")
	}
	w, err := r.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("bodega", id)
	}
	return w, nil
}

func (l *ledgerTx) warehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	return requireWarehouse(ctx, l.r, id)
}

// document valida que el documento referenciado exista; id vacío es válido.
func (l *ledgerTx) document(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	doc, err := l.r.Documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.NotFound("documento", id)
	}
	return nil
}

// lock asegura vínculo y fila de stock y la bloquea hasta el fin de la transacción.
func (l *ledgerTx) lock(ctx context.Context, p *entity.Product, warehouseID string) (*entity.Stock, error) {
	if err := l.r.Stock.EnsureLink(ctx, p.ID, warehouseID); err != nil {
		return nil, err
	}
	return l.r.Stock.GetForUpdate(ctx, p.ID, warehouseID)
}

// apply suma delta a la existencia y agrega el movimiento. Un resultado negativo se rechaza
// con *domain.InsufficientStockError y uno que excede int64 con ErrInvalidInput, sin escribir nada.
func (l *ledgerTx) apply(ctx context.Context, p *entity.Product, warehouseID string, delta int64, kind string, meta movementMeta) (*entity.StockMovement, error) {
	st, err := l.lock(ctx, p, warehouseID)
	if err != nil {
		return nil, err
	}
	if delta > 0 && st.Quantity > math.MaxInt64-delta {
		return nil, domain.Invalid("existencia de %s en bodega %s excede el máximo (%d + %d)", p.Code, warehouseID, st.Quantity, delta)
	}
	next := st.Quantity + delta
	if next < 0 {
		return nil, &domain.InsufficientStockError{
			ProductCode: p.Code,
			WarehouseID: warehouseID,
			Requested:   -delta,
			Available:   st.Quantity,
		}
	}
	if err := l.r.Stock.SetQuantity(ctx, p.ID, warehouseID, next); err != nil {
		return nil, err
	}
	return l.record(ctx, p, warehouseID, delta, kind, meta)
}

// setLevel lleva la existencia a target; sin diferencia no escribe ni registra movimiento.
func (l *ledgerTx) setLevel(ctx context.Context, p *entity.Product, warehouseID string, target int64, meta movementMeta) (*entity.StockMovement, error) {
	if target < 0 {
		return nil, domain.Invalid("nivel objetivo negativo %d", target)
	}
	st, err := l.lock(ctx, p, warehouseID)
	if err != nil {
		return nil, err
	}
	delta := target - st.Quantity
	if delta == 0 {
		return nil, nil
	}
	if err := l.r.Stock.SetQuantity(ctx, p.ID, warehouseID, target); err != nil {
		return nil, err
	}
	return l.record(ctx, p, warehouseID, delta, entity.MovementKindAdjust, meta)
}

func (l *ledgerTx) record(ctx context.Context, p *entity.Product, warehouseID string, delta int64, kind string, meta movementMeta) (*entity.StockMovement, error) {
	m := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		WarehouseID: warehouseID,
		Quantity:    delta,
		Kind:        kind,
		Note:        meta.Note,
		DocumentID:  meta.DocumentID,
		RefID:       meta.RefID,
		UserID:      meta.UserID,
		CreatedAt:   l.now,
		ProductCode: p.Code,
		ProductName: p.Name,
	}
	if err := l.r.Movements.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("append movement: %w", err)
	}
	l.movements = append(l.movements, m)
	return m, nil
}

// createDocument crea la cabecera asignando folio cuando no viene uno explícito.
// La asignación se serializa por serie con LockSeries; el índice único (serie, folio) respalda.
func (l *ledgerTx) createDocument(ctx context.Context, in DocumentInput, defaultSeries string) (*entity.MovementDocument, error) {
	if !domaininv.ValidDocumentType(in.Type) {
		return nil, domain.Invalid("tipo de documento %q", in.Type)
	}
	if in.TotalLines < 0 || in.TotalQty < 0 {
		return nil, domain.Invalid("totales negativos")
	}
	if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	raw := in.Series
	if raw == "" {
		raw = defaultSeries
	}
	series, err := domaininv.NormalizeSeries(raw)
	if err != nil {
		return nil, err
	}

	var folio int64
	if in.Folio != nil {
		if err := domaininv.ValidateFolio(*in.Folio); err != nil {
			return nil, err
		}
		folio = *in.Folio
	} else {
		if err := l.r.Documents.LockSeries(ctx, series); err != nil {
			return nil, err
		}
		last, err := l.r.Documents.MaxFolio(ctx, series)
		if err != nil {
			return nil, err
		}
		folio = domaininv.NextFolio(last)
	}

	doc := &entity.MovementDocument{
		ID:           uuid.New().String(),
		Type:         in.Type,
		WarehouseID:  in.WarehouseID,
		Counterparty: in.Counterparty,
		Reference:    in.Reference,
		Note:         in.Note,
		TotalLines:   in.TotalLines,
		TotalQty:     in.TotalQty,
		Series:       series,
		Folio:        folio,
		Status:       entity.DocumentStatusPosted,
		UserID:       in.UserID,
		CreatedAt:    l.now,
	}
	if err := l.r.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	l.documents = append(l.documents, doc)
	return doc, nil
}
