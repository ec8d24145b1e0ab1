package http

import (
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductCode: m.ProductCode,
		ProductName: m.ProductName,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		Kind:        m.Kind,
		Note:        m.Note,
		DocumentID:  m.DocumentID,
		RefID:       m.RefID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

func toMovementList(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out
}

func toMutationResponse(m *entity.StockMovement) dto.MutationResponse {
	return dto.MutationResponse{Applied: m != nil, Movement: toMovementResponse(m)}
}

func toDocumentResponse(d *entity.MovementDocument) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:           d.ID,
		Type:         d.Type,
		WarehouseID:  d.WarehouseID,
		Counterparty: d.Counterparty,
		Reference:    d.Reference,
		Note:         d.Note,
		TotalLines:   d.TotalLines,
		TotalQty:     d.TotalQty,
		Series:       d.Series,
		Folio:        d.Folio,
		Status:       d.Status,
		UserID:       d.UserID,
		CreatedAt:    d.CreatedAt,
	}
}

func toPostedResponse(p *inventory.PostedDocument) dto.PostedDocumentResponse {
	if p == nil {
		return dto.PostedDocumentResponse{Movements: []dto.MovementResponse{}}
	}
	return dto.PostedDocumentResponse{Document: toDocumentResponse(p.Document), Movements: toMovementList(p.Movements)}
}

func toDocumentDetail(d *inventory.DocumentDetail) dto.DocumentDetailResponse {
	out := dto.DocumentDetailResponse{
		Document: *toDocumentResponse(d.Document),
		Lines:    make([]dto.DocumentLineResponse, 0, len(d.Lines)),
	}
	if d.Warehouse != nil {
		out.WarehouseName = d.Warehouse.Name
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, dto.DocumentLineResponse{
			ProductCode:  l.ProductCode,
			ProductName:  l.ProductName,
			Unit:         l.Unit,
			Quantity:     l.Quantity,
			BaseQuantity: l.BaseQuantity,
			Kind:         l.Kind,
			Note:         l.Note,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out
}

func toSessionResponse(s *entity.CountSession) *dto.CountSessionResponse {
	if s == nil {
		return nil
	}
	return &dto.CountSessionResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		Status:      s.Status,
		Note:        s.Note,
		DocumentID:  s.DocumentID,
		CreatedAt:   s.CreatedAt,
		ClosedAt:    s.ClosedAt,
	}
}

func toCountDetail(d *inventory.CountDetail) dto.CountDetailResponse {
	out := dto.CountDetailResponse{
		Session: *toSessionResponse(d.Session),
		Lines:   make([]dto.CountLineResponse, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		out.Lines = append(out.Lines, dto.CountLineResponse{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			SysQty:      l.SysQty,
			CountedQty:  l.CountedQty,
		})
	}
	return out
}

func toStockLevels(list []*entity.StockLevel) []dto.StockLevelResponse {
	out := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		out = append(out, usecase.ToStockLevelResponse(l))
	}
	return out
}

func toRuleResponse(r *entity.ReplenishmentRule) dto.ReplenishmentRuleResponse {
	return dto.ReplenishmentRuleResponse{
		ProductID:    r.ProductID,
		ProductCode:  r.ProductCode,
		ProductName:  r.ProductName,
		WarehouseID:  r.WarehouseID,
		MinQty:       r.MinQty,
		MaxQty:       r.MaxQty,
		ReorderPoint: r.ReorderPoint,
		Multiple:     r.Multiple,
		LeadTimeDays: r.LeadTimeDays,
	}
}
