package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
)

// InventoryHandler operaciones del libro de existencias y consulta del diario.
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	movements *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, movements *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, movements: movements}
}

// Increment godoc
// @Summary      Entrada de existencias
// @Description  qty <= 0 no produce cambios (applied=false).
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Producto, bodega y cantidad"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/increment [post]
func (h *InventoryHandler) Increment(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	m, err := h.ledger.Increment(c.UserContext(), movementInput(c, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMutationResponse(m))
}

// Decrement godoc
// @Summary      Salida de existencias
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Producto, bodega y cantidad"
// @Success      200   {object}  dto.MutationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/decrement [post]
func (h *InventoryHandler) Decrement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	m, err := h.ledger.Decrement(c.UserContext(), movementInput(c, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMutationResponse(m))
}

// SetLevel godoc
// @Summary      Ajustar existencia a un nivel
// @Description  Registra un movimiento ADJ por la diferencia; sin diferencia no hay movimiento.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetLevelRequest  true  "Nivel objetivo"
// @Success      200   {object}  dto.MutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/set-level [post]
func (h *InventoryHandler) SetLevel(c *fiber.Ctx) error {
	var in dto.SetLevelRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	m, err := h.ledger.SetLevel(c.UserContext(), inventory.SetLevelInput{
		ProductCode: in.ProductCode,
		WarehouseID: in.WarehouseID,
		Target:      in.Target,
		Note:        in.Note,
		DocumentID:  in.DocumentID,
		UserID:      userOr(c, in.UserID),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMutationResponse(m))
}

// Transfer godoc
// @Summary      Traslado entre bodegas
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Origen, destino y cantidad"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.ledger.Transfer(c.UserContext(), inventory.TransferInput{
		ProductCode:     in.ProductCode,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            in.Note,
		UserID:          userOr(c, in.UserID),
	})
	if err != nil {
		return respondError(c, err)
	}
	if res == nil {
		return c.JSON(dto.TransferResponse{})
	}
	return c.JSON(dto.TransferResponse{Applied: true, Out: toMovementResponse(res.Out), In: toMovementResponse(res.In)})
}

// GetStock godoc
// @Summary      Existencia de un producto en una bodega
// @Tags         stock
// @Produce      json
// @Param        product_code  query  string  true  "Código o alias"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	code, err := requireQuery(c, "product_code")
	if err != nil {
		return respondError(c, err)
	}
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	st, err := h.ledger.Stock(c.UserContext(), code, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductCode: code, WarehouseID: warehouseID, Quantity: st.Quantity})
}

// ListMovements godoc
// @Summary      Diario de movimientos, más recientes primero
// @Tags         stock
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        product_code  query  string  false  "Código o alias"
// @Param        days          query  int     false  "Últimos N días (prioridad sobre from)"
// @Param        from          query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to            query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        limit         query  int     false  "Límite"  default(200)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.movements.ListMovements(c.UserContext(), inventory.MovementQuery{
		WarehouseID: c.Query("warehouse_id"),
		ProductCode: c.Query("product_code"),
		Days:        c.QueryInt("days", 0),
		From:        from,
		To:          to,
		Limit:       c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.MovementResponse]{Items: toMovementList(list)})
}

func movementInput(c *fiber.Ctx, in dto.MovementRequest) inventory.MovementInput {
	return inventory.MovementInput{
		ProductCode: in.ProductCode,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Note:        in.Note,
		DocumentID:  in.DocumentID,
		UserID:      userOr(c, in.UserID),
	}
}
