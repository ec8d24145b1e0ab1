package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// DocumentHandler registro de documentos con serie y folio.
type DocumentHandler struct {
	uc *inventory.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *inventory.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cabecera de documento
// @Description  Sin folio asigna el siguiente de la serie. Usar el id devuelto como doc_id de los movimientos.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Serie y folio ya usados"
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	doc, err := h.uc.CreateDocument(c.UserContext(), inventory.DocumentInput{
		Type:         in.Type,
		WarehouseID:  in.WarehouseID,
		Counterparty: in.Counterparty,
		Reference:    in.Reference,
		Note:         in.Note,
		TotalLines:   in.TotalLines,
		TotalQty:     in.TotalQty,
		Series:       in.Series,
		Folio:        in.Folio,
		UserID:       userOr(c, in.UserID),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// Post godoc
// @Summary      Registrar lote de entrada o salida
// @Description  Cabecera y líneas en una sola transacción. Una salida sin existencia suficiente no aplica nada.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostDocumentRequest  true  "Lote"
// @Success      201   {object}  dto.PostedDocumentResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/documents/batch [post]
func (h *DocumentHandler) Post(c *fiber.Ctx) error {
	var in dto.PostDocumentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	lines := make([]inventory.DocumentLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.DocumentLineInput{ProductCode: l.ProductCode, Quantity: l.Quantity, Note: l.Note})
	}
	posted, err := h.uc.PostDocument(c.UserContext(), inventory.PostDocumentInput{
		Type:         in.Type,
		WarehouseID:  in.WarehouseID,
		Counterparty: in.Counterparty,
		Reference:    in.Reference,
		Note:         in.Note,
		Series:       in.Series,
		Folio:        in.Folio,
		UserID:       userOr(c, in.UserID),
		Lines:        lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostedResponse(posted))
}

// Adjust godoc
// @Summary      Registrar lote de ajuste
// @Description  Lleva cada producto a su nivel objetivo; las líneas sin diferencia se omiten.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "Ajuste"
// @Success      200   {object}  dto.PostedDocumentResponse  "Sin diferencias: document vacío"
// @Success      201   {object}  dto.PostedDocumentResponse
// @Router       /api/documents/adjustments [post]
func (h *DocumentHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	lines := make([]inventory.AdjustmentLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.AdjustmentLine{ProductCode: l.ProductCode, Target: l.Target})
	}
	posted, err := h.uc.PostAdjustment(c.UserContext(), inventory.AdjustmentInput{
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
		Note:        in.Note,
		Series:      in.Series,
		UserID:      userOr(c, in.UserID),
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	if posted == nil {
		return c.JSON(toPostedResponse(nil))
	}
	return c.Status(fiber.StatusCreated).JSON(toPostedResponse(posted))
}

// Get godoc
// @Summary      Documento con sus líneas
// @Tags         documents
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.uc.GetDocument(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentDetail(detail))
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        type          query  string  false  "IN, OUT o ADJ"
// @Param        series        query  string  false  "Serie"
// @Param        limit         query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.ListResponse[dto.DocumentResponse]
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListDocuments(c.UserContext(), entity.DocumentFilter{
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		Series:      c.Query("series"),
		Limit:       c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return c.JSON(dto.ListResponse[dto.DocumentResponse]{Items: items})
}
