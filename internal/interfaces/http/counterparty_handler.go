package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
)

// CounterpartyHandler proveedores y clientes.
type CounterpartyHandler struct {
	uc *usecase.CounterpartyUseCase
}

// NewCounterpartyHandler construye el handler.
func NewCounterpartyHandler(uc *usecase.CounterpartyUseCase) *CounterpartyHandler {
	return &CounterpartyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tercero
// @Tags         counterparties
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CounterpartyRequest  true  "Proveedor o cliente"
// @Success      201   {object}  dto.CounterpartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/counterparties [post]
func (h *CounterpartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CounterpartyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar terceros
// @Tags         counterparties
// @Produce      json
// @Param        kind  query  string  false  "SUPPLIER o CUSTOMER"
// @Success      200   {object}  dto.ListResponse[dto.CounterpartyResponse]
// @Router       /api/counterparties [get]
func (h *CounterpartyHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext(), c.Query("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.CounterpartyResponse]{Items: items})
}

// Update godoc
// @Summary      Actualizar tercero
// @Tags         counterparties
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del tercero"
// @Param        body  body  dto.CounterpartyRequest  true  "Datos completos"
// @Success      200   {object}  dto.CounterpartyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/counterparties/{id} [put]
func (h *CounterpartyHandler) Update(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CounterpartyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tercero
// @Tags         counterparties
// @Param        id   path  string  true  "ID del tercero"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counterparties/{id} [delete]
func (h *CounterpartyHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
