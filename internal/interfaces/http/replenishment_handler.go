package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
)

// ReplenishmentHandler umbrales, reglas de reabastecimiento y consultas consultivas.
type ReplenishmentHandler struct {
	uc *inventory.ReplenishmentUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// LowStock godoc
// @Summary      Productos en o bajo su umbral
// @Description  Los agotados van primero.
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.StockLevelResponse]
// @Router       /api/replenishment/low-stock [get]
func (h *ReplenishmentHandler) LowStock(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListLowStock(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.StockLevelResponse]{Items: toStockLevels(list)})
}

// Suggestions godoc
// @Summary      Sugerencias de compra por umbral
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseSuggestionResponse]
// @Router       /api/replenishment/suggestions [get]
func (h *ReplenishmentHandler) Suggestions(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListPurchaseSuggestions(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.PurchaseSuggestionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.PurchaseSuggestionResponse{
			ProductID: s.ProductID,
			Code:      s.Code,
			Name:      s.Name,
			Quantity:  s.Quantity,
			Threshold: s.Threshold,
			Deficit:   s.Deficit,
		})
	}
	return c.JSON(dto.ListResponse[dto.PurchaseSuggestionResponse]{Items: items})
}

// Proposals godoc
// @Summary      Propuestas de pedido por regla de reabastecimiento
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.ReorderProposalResponse]
// @Router       /api/replenishment/proposals [get]
func (h *ReplenishmentHandler) Proposals(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListReorderProposals(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ReorderProposalResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ReorderProposalResponse{
			ProductID:    p.ProductID,
			Code:         p.Code,
			Name:         p.Name,
			Quantity:     p.Quantity,
			ReorderPoint: p.ReorderPoint,
			MaxQty:       p.MaxQty,
			OrderQty:     p.OrderQty,
			LeadTimeDays: p.LeadTimeDays,
		})
	}
	return c.JSON(dto.ListResponse[dto.ReorderProposalResponse]{Items: items})
}

// SetThreshold godoc
// @Summary      Fijar umbral mínimo
// @Tags         replenishment
// @Accept       json
// @Param        body  body  dto.ThresholdRequest  true  "Umbral (0 lo desactiva)"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/thresholds [put]
func (h *ReplenishmentHandler) SetThreshold(c *fiber.Ctx) error {
	var in dto.ThresholdRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetThreshold(c.UserContext(), in.ProductCode, in.WarehouseID, in.MinQty); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListThresholds godoc
// @Summary      Umbrales de la bodega
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.ThresholdResponse]
// @Router       /api/replenishment/thresholds [get]
func (h *ReplenishmentHandler) ListThresholds(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListThresholds(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ThresholdResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.ThresholdResponse{ProductID: t.ProductID, WarehouseID: t.WarehouseID, MinQty: t.MinQty})
	}
	return c.JSON(dto.ListResponse[dto.ThresholdResponse]{Items: items})
}

// SetRule godoc
// @Summary      Crear o reemplazar regla de reabastecimiento
// @Tags         replenishment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplenishmentRuleRequest  true  "Regla"
// @Success      200   {object}  dto.ReplenishmentRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/rules [put]
func (h *ReplenishmentHandler) SetRule(c *fiber.Ctx) error {
	var in dto.ReplenishmentRuleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	rule, err := h.uc.SetReplenishmentRule(c.UserContext(), inventory.ReplenishmentRuleInput{
		ProductCode:  in.ProductCode,
		WarehouseID:  in.WarehouseID,
		MinQty:       in.MinQty,
		MaxQty:       in.MaxQty,
		ReorderPoint: in.ReorderPoint,
		Multiple:     in.Multiple,
		LeadTimeDays: in.LeadTimeDays,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRuleResponse(rule))
}

// ListRules godoc
// @Summary      Reglas de reabastecimiento de la bodega
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.ReplenishmentRuleResponse]
// @Router       /api/replenishment/rules [get]
func (h *ReplenishmentHandler) ListRules(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListReplenishmentRules(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ReplenishmentRuleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toRuleResponse(r))
	}
	return c.JSON(dto.ListResponse[dto.ReplenishmentRuleResponse]{Items: items})
}

// DeleteRule godoc
// @Summary      Eliminar regla de reabastecimiento
// @Tags         replenishment
// @Param        product_code  query  string  true  "Código o alias"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishment/rules [delete]
func (h *ReplenishmentHandler) DeleteRule(c *fiber.Ctx) error {
	code, err := requireQuery(c, "product_code")
	if err != nil {
		return respondError(c, err)
	}
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteReplenishmentRule(c.UserContext(), code, warehouseID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
