package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// DocumentUseCase registro de documentos: cabeceras con serie/folio y lotes de entrada,
// salida y ajuste aplicados junto con sus movimientos.
type DocumentUseCase struct {
	core
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(d Deps) *DocumentUseCase {
	return &DocumentUseCase{core: newCore(d)}
}

// DocumentInput cabecera de documento. Series vacía usa la serie por defecto; Folio nil asigna
// el siguiente de la serie.
type DocumentInput struct {
	Type         string
	WarehouseID  string
	Counterparty string
	Reference    string
	Note         string
	TotalLines   int
	TotalQty     int64
	Series       string
	Folio        *int64
	UserID       string
}

// DocumentLineInput línea de un lote de entrada o salida.
type DocumentLineInput struct {
	ProductCode string
	Quantity    int64
	Note        string
}

// PostDocumentInput lote de entrada (IN) o salida (OUT).
type PostDocumentInput struct {
	Type         string
	WarehouseID  string
	Counterparty string
	Reference    string
	Note         string
	Series       string
	Folio        *int64
	UserID       string
	Lines        []DocumentLineInput
}

// AdjustmentLine nivel objetivo de un producto.
type AdjustmentLine struct {
	ProductCode string
	Target      int64
}

// AdjustmentInput lote de ajuste con motivo.
type AdjustmentInput struct {
	WarehouseID string
	Reason      string
	Note        string
	Series      string
	UserID      string
	Lines       []AdjustmentLine
}

// PostedDocument documento creado y los movimientos aplicados bajo él.
type PostedDocument struct {
	Document  *entity.MovementDocument
	Movements []*entity.StockMovement
}

// DocumentLine línea de exportación de un documento.
type DocumentLine struct {
	ProductCode  string
	ProductName  string
	Unit         string
	Quantity     int64
	BaseQuantity decimal.Decimal
	Kind         string
	Note         string
	CreatedAt    time.Time
}

// DocumentDetail cabecera, bodega y líneas (para la capa de reportes).
type DocumentDetail struct {
	Document  *entity.MovementDocument
	Warehouse *entity.Warehouse
	Lines     []DocumentLine
}

// CreateDocument crea solo la cabecera y devuelve el documento para usar su ID como doc_id.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, in DocumentInput) (*entity.MovementDocument, error) {
	var doc *entity.MovementDocument
	_, err := uc.run(ctx, "create_document", func(l *ledgerTx) error {
		var err error
		doc, err = l.createDocument(ctx, in, uc.d.DefaultSeries)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "document.create", "document", doc.ID, in.UserID, doc)
	return doc, nil
}

// PostDocument crea el documento y aplica todas sus líneas en una transacción.
// Las líneas con cantidad <= 0 se ignoran; los totales se calculan con las restantes.
// En una salida, una línea sin existencia suficiente revierte todo el lote.
func (uc *DocumentUseCase) PostDocument(ctx context.Context, in PostDocumentInput) (*PostedDocument, error) {
	var kind string
	switch in.Type {
	case entity.DocumentTypeIn:
		kind = entity.MovementKindIn
	case entity.DocumentTypeOut:
		kind = entity.MovementKindOut
	default:
		return nil, domain.Invalid("tipo de lote %q", in.Type)
	}

	lines := make([]DocumentLineInput, 0, len(in.Lines))
	var totalQty int64
	for _, ln := range in.Lines {
		if ln.Quantity <= 0 {
			continue
		}
		lines = append(lines, ln)
		totalQty += ln.Quantity
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("documento sin líneas")
	}

	out := &PostedDocument{}
	_, err := uc.run(ctx, "post_document", func(l *ledgerTx) error {
		doc, err := l.createDocument(ctx, DocumentInput{
			Type:         in.Type,
			WarehouseID:  in.WarehouseID,
			Counterparty: in.Counterparty,
			Reference:    in.Reference,
			Note:         in.Note,
			TotalLines:   len(lines),
			TotalQty:     totalQty,
			Series:       in.Series,
			Folio:        in.Folio,
			UserID:       in.UserID,
		}, uc.d.DefaultSeries)
		if err != nil {
			return err
		}
		out.Document = doc
		for _, ln := range lines {
			p, err := l.product(ctx, ln.ProductCode)
			if err != nil {
				return err
			}
			delta := ln.Quantity
			if kind == entity.MovementKindOut {
				delta = -delta
			}
			note := ln.Note
			if note == "" {
				note = in.Note
			}
			m, err := l.apply(ctx, p, in.WarehouseID, delta, kind, movementMeta{
				Note: note, DocumentID: doc.ID, UserID: in.UserID,
			})
			if err != nil {
				return err
			}
			out.Movements = append(out.Movements, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "document.post", "document", out.Document.ID, in.UserID, out.Document)
	return out, nil
}

// PostAdjustment lleva cada línea a su nivel objetivo bajo un documento ADJ.
// Si ninguna línea cambia la existencia no se crea documento y Document queda nil.
func (uc *DocumentUseCase) PostAdjustment(ctx context.Context, in AdjustmentInput) (*PostedDocument, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("ajuste sin líneas")
	}
	for _, ln := range in.Lines {
		if ln.Target < 0 {
			return nil, domain.Invalid("nivel objetivo negativo %d para %s", ln.Target, ln.ProductCode)
		}
	}

	out := &PostedDocument{}
	_, err := uc.run(ctx, "post_adjustment", func(l *ledgerTx) error {
		if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
			return err
		}
		type pending struct {
			p      *entity.Product
			target int64
		}
		var changes []pending
		var totalQty int64
		for _, ln := range in.Lines {
			p, err := l.product(ctx, ln.ProductCode)
			if err != nil {
				return err
			}
			st, err := l.lock(ctx, p, in.WarehouseID)
			if err != nil {
				return err
			}
			d := ln.Target - st.Quantity
			if d == 0 {
				continue
			}
			if d < 0 {
				d = -d
			}
			totalQty += d
			changes = append(changes, pending{p: p, target: ln.Target})
		}
		if len(changes) == 0 {
			return nil
		}

		note := in.Note
		if note == "" {
			note = in.Reason
		}
		doc, err := l.createDocument(ctx, DocumentInput{
			Type:        entity.DocumentTypeAdjust,
			WarehouseID: in.WarehouseID,
			Reference:   in.Reason,
			Note:        note,
			TotalLines:  len(changes),
			TotalQty:    totalQty,
			Series:      in.Series,
			UserID:      in.UserID,
		}, uc.d.DefaultSeries)
		if err != nil {
			return err
		}
		out.Document = doc
		for _, c := range changes {
			m, err := l.setLevel(ctx, c.p, in.WarehouseID, c.target, movementMeta{
				Note: note, DocumentID: doc.ID, UserID: in.UserID,
			})
			if err != nil {
				return err
			}
			if m != nil {
				out.Movements = append(out.Movements, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Document != nil {
		uc.audit(ctx, "document.adjust", "document", out.Document.ID, in.UserID, out.Document)
	}
	return out, nil
}

// GetDocument devuelve cabecera y líneas en orden de registro.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, id string) (*DocumentDetail, error) {
	r := uc.d.Repos
	doc, err := r.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFound("documento", id)
	}
	// La bodega pudo eliminarse; el documento se conserva igual.
	wh, err := r.Warehouses.GetByID(ctx, doc.WarehouseID)
	if err != nil {
		return nil, err
	}
	movs, err := r.Movements.List(ctx, entity.MovementFilter{DocumentID: id})
	if err != nil {
		return nil, err
	}

	products := make(map[string]*entity.Product)
	lines := make([]DocumentLine, 0, len(movs))
	for _, m := range movs {
		p, ok := products[m.ProductID]
		if !ok {
			if p, err = r.Products.GetByID(ctx, m.ProductID); err != nil {
				return nil, err
			}
			products[m.ProductID] = p
		}
		line := DocumentLine{
			ProductCode: m.ProductCode,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			Kind:        m.Kind,
			Note:        m.Note,
			CreatedAt:   m.CreatedAt,
		}
		if p != nil {
			line.Unit = p.Unit
			line.BaseQuantity = domaininv.BaseUnits(m.Quantity, p.UnitFactor)
		} else {
			line.BaseQuantity = decimal.NewFromInt(m.Quantity)
		}
		lines = append(lines, line)
	}
	return &DocumentDetail{Document: doc, Warehouse: wh, Lines: lines}, nil
}

// ListDocuments lista cabeceras, más recientes primero.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, filter entity.DocumentFilter) ([]*entity.MovementDocument, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Series != "" {
		s, err := domaininv.NormalizeSeries(filter.Series)
		if err != nil {
			return nil, err
		}
		filter.Series = s
	}
	return uc.d.Repos.Documents.List(ctx, filter)
}
