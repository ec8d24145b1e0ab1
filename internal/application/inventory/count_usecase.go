package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// Contraparte y prefijo de referencia de los documentos generados por conteos.
const (
	CountCounterparty    = "cycle count"
	CountReferencePrefix = "COUNT-"
)

// CountUseCase conteos cíclicos: OPEN -> CLOSED (terminal).
type CountUseCase struct {
	core
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(d Deps) *CountUseCase {
	return &CountUseCase{core: newCore(d)}
}

// CountDetail sesión con sus líneas.
type CountDetail struct {
	Session *entity.CountSession
	Lines   []*entity.CountLine
}

// ReconcileResult Document y Movements quedan vacíos cuando no había diferencias.
type ReconcileResult struct {
	Session   *entity.CountSession
	Document  *entity.MovementDocument
	Movements []*entity.StockMovement
}

// CountSessionInput apertura de un conteo. Category vacía incluye todos los productos vinculados.
type CountSessionInput struct {
	WarehouseID string
	Note        string
	Category    string
}

// OpenSession toma la foto de la existencia de los productos vinculados a la bodega,
// opcionalmente solo los de una categoría.
func (uc *CountUseCase) OpenSession(ctx context.Context, in CountSessionInput) (*CountDetail, error) {
	category := domaininv.NormalizeName(in.Category)
	out := &CountDetail{}
	_, err := uc.run(ctx, "open_count", func(l *ledgerTx) error {
		if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
			return err
		}
		levels, err := l.r.Stock.ListByWarehouse(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		s := &entity.CountSession{
			ID:          uuid.New().String(),
			WarehouseID: in.WarehouseID,
			Status:      entity.CountStatusOpen,
			Note:        in.Note,
			CreatedAt:   l.now,
		}
		lines := make([]*entity.CountLine, 0, len(levels))
		for _, lv := range levels {
			if category != "" {
				p, err := l.r.Products.GetByID(ctx, lv.ProductID)
				if err != nil {
					return err
				}
				if p == nil || p.Category != category {
					continue
				}
			}
			lines = append(lines, &entity.CountLine{
				SessionID:   s.ID,
				ProductID:   lv.ProductID,
				SysQty:      lv.Quantity,
				ProductCode: lv.Code,
				ProductName: lv.Name,
			})
		}
		if err := l.r.Counts.CreateSession(ctx, s, lines); err != nil {
			return err
		}
		out.Session, out.Lines = s, lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "count.open", "count_session", out.Session.ID, "", out.Session)
	return out, nil
}

// SetCounted registra la cantidad contada de un producto. Repetible mientras la sesión esté OPEN.
func (uc *CountUseCase) SetCounted(ctx context.Context, sessionID, productCode string, counted int64) error {
	if counted < 0 {
		return domain.Invalid("cantidad contada negativa %d", counted)
	}
	_, err := uc.run(ctx, "set_counted", func(l *ledgerTx) error {
		s, err := l.session(ctx, sessionID)
		if err != nil {
			return err
		}
		if !s.IsOpen() {
			return domain.Conflict("sesión %s cerrada", s.ID)
		}
		p, err := l.product(ctx, productCode)
		if err != nil {
			return err
		}
		return l.r.Counts.SetCounted(ctx, sessionID, p.ID, counted)
	})
	return err
}

// Reconcile lleva cada línea contada a su cantidad contada bajo un documento ADJ y cierra la sesión.
// La diferencia se calcula contra la existencia actual bloqueada, no contra la foto de apertura,
// así los movimientos posteriores a la apertura no desvían el resultado.
// Sin diferencias no crea documento y la sesión sigue OPEN. Si alguna diferencia no puede
// aplicarse no se aplica ninguna y la sesión queda OPEN para reintentar.
func (uc *CountUseCase) Reconcile(ctx context.Context, sessionID, userID string) (*ReconcileResult, error) {
	out := &ReconcileResult{}
	_, err := uc.run(ctx, "reconcile", func(l *ledgerTx) error {
		s, err := l.session(ctx, sessionID)
		if err != nil {
			return err
		}
		if !s.IsOpen() {
			return domain.Conflict("sesión %s cerrada", s.ID)
		}
		out.Session = s
		lines, err := l.r.Counts.ListLines(ctx, sessionID)
		if err != nil {
			return err
		}
		products := map[string]*entity.Product{}
		current := map[string]int64{}
		for _, ln := range lines {
			if ln.CountedQty == nil {
				continue
			}
			p, err := l.r.Products.GetByID(ctx, ln.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFound("producto", ln.ProductID)
			}
			st, err := l.r.Stock.GetForUpdate(ctx, p.ID, s.WarehouseID)
			if err != nil {
				return err
			}
			products[p.ID] = p
			current[p.ID] = st.Quantity
		}
		deltas := domaininv.CountDeltas(lines, current)
		if len(deltas) == 0 {
			return nil
		}

		doc, err := l.createDocument(ctx, DocumentInput{
			Type:         entity.DocumentTypeAdjust,
			WarehouseID:  s.WarehouseID,
			Counterparty: CountCounterparty,
			Reference:    CountReferencePrefix + s.ID,
			Note:         s.Note,
			TotalLines:   len(deltas),
			TotalQty:     domaininv.SumAbs(deltas),
			UserID:       userID,
		}, uc.d.DefaultSeries)
		if err != nil {
			return err
		}
		out.Document = doc

		meta := movementMeta{Note: "Conteo " + s.ID, DocumentID: doc.ID, UserID: userID}
		for _, d := range deltas {
			p := products[d.ProductID]
			kind := entity.MovementKindIn
			if d.Delta < 0 {
				kind = entity.MovementKindOut
			}
			m, err := l.apply(ctx, p, s.WarehouseID, d.Delta, kind, meta)
			if err != nil {
				return err
			}
			out.Movements = append(out.Movements, m)
		}
		closed := l.now
		if err := l.r.Counts.Close(ctx, s.ID, doc.ID, closed); err != nil {
			return err
		}
		s.Status = entity.CountStatusClosed
		s.DocumentID = doc.ID
		s.ClosedAt = &closed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Document != nil {
		uc.audit(ctx, "count.reconcile", "count_session", sessionID, userID, out.Document)
	}
	return out, nil
}

// GetSession sesión con sus líneas.
func (uc *CountUseCase) GetSession(ctx context.Context, id string) (*CountDetail, error) {
	s, err := uc.d.Repos.Counts.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("sesión de conteo", id)
	}
	lines, err := uc.d.Repos.Counts.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CountDetail{Session: s, Lines: lines}, nil
}

// ListSessions sesiones de la bodega, más recientes primero.
func (uc *CountUseCase) ListSessions(ctx context.Context, warehouseID string) ([]*entity.CountSession, error) {
	return uc.d.Repos.Counts.ListSessions(ctx, warehouseID)
}

func (l *ledgerTx) session(ctx context.Context, id string) (*entity.CountSession, error) {
	s, err := l.r.Counts.GetSessionForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("sesión de conteo", id)
	}
	return s, nil
}
