package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
)

// CountHandler sesiones de conteo cíclico.
type CountHandler struct {
	uc *inventory.CountUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *inventory.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir sesión de conteo
// @Description  Toma la foto de la existencia de los productos vinculados a la bodega, opcionalmente de una categoría.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCountRequest  true  "Bodega"
// @Success      201   {object}  dto.CountDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCountRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	detail, err := h.uc.OpenSession(c.UserContext(), inventory.CountSessionInput{
		WarehouseID: in.WarehouseID,
		Note:        in.Note,
		Category:    in.Category,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountDetail(detail))
}

// Get godoc
// @Summary      Sesión de conteo con líneas
// @Tags         counts
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CountDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [get]
func (h *CountHandler) Get(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.uc.GetSession(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountDetail(detail))
}

// List godoc
// @Summary      Sesiones de conteo de una bodega
// @Tags         counts
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ListResponse[dto.CountSessionResponse]
// @Router       /api/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	warehouseID, err := requireQuery(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListSessions(c.UserContext(), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.CountSessionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSessionResponse(s))
	}
	return c.JSON(dto.ListResponse[dto.CountSessionResponse]{Items: items})
}

// SetCounted godoc
// @Summary      Registrar cantidad contada
// @Tags         counts
// @Accept       json
// @Param        id    path  string                 true  "ID de la sesión"
// @Param        body  body  dto.SetCountedRequest  true  "Producto y cantidad"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse  "Sesión cerrada"
// @Router       /api/counts/{id}/lines [put]
func (h *CountHandler) SetCounted(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetCountedRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetCounted(c.UserContext(), id, in.ProductCode, in.Counted); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile godoc
// @Summary      Conciliar sesión de conteo
// @Description  Aplica las diferencias contadas como un documento ADJ y cierra la sesión. Sin diferencias la sesión queda abierta.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        id    path  string                true   "ID de la sesión"
// @Param        body  body  dto.ReconcileRequest  false  "Usuario"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/reconcile [post]
func (h *CountHandler) Reconcile(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReconcileRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	res, err := h.uc.Reconcile(c.UserContext(), id, userOr(c, in.UserID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		Session:   toSessionResponse(res.Session),
		Document:  toDocumentResponse(res.Document),
		Movements: toMovementList(res.Movements),
	})
}
