package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
)

// ProductHandler catálogo: productos, alias y vínculos con bodegas.
type ProductHandler struct {
	uc *usecase.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar producto por código
// @Description  name/description ausentes no pisan valores. warehouse_id vincula el producto con existencia cero.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertProductRequest  true  "Producto"
// @Success      200   {object}  dto.UpsertProductResponse
// @Success      201   {object}  dto.UpsertProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [put]
func (h *ProductHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertProductRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener producto por código o alias
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código o alias"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos por código
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[dto.ProductResponse]{Items: items})
}

// Categories godoc
// @Summary      Categorías en uso
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ListResponse[string]
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	items, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[string]{Items: items})
}

// Update godoc
// @Summary      Editar atributos del producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        code  path  string                    true  "Código o alias"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), code, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Link godoc
// @Summary      Vincular producto a bodega
// @Tags         products
// @Accept       json
// @Param        code  path  string           true  "Código o alias"
// @Param        body  body  dto.LinkRequest  true  "Bodega"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/links [post]
func (h *ProductHandler) Link(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LinkRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Link(c.UserContext(), code, in.WarehouseID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// IsLinked godoc
// @Summary      Consultar vínculo producto-bodega
// @Tags         products
// @Produce      json
// @Param        code          path  string  true  "Código o alias"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.LinkStatusResponse
// @Router       /api/products/{code}/links/{warehouse_id} [get]
func (h *ProductHandler) IsLinked(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	linked, err := h.uc.IsLinked(c.UserContext(), code, c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LinkStatusResponse{Linked: linked})
}

// Unlink godoc
// @Summary      Desvincular producto de bodega
// @Tags         products
// @Param        code          path  string  true  "Código o alias"
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "El producto aún tiene existencia"
// @Router       /api/products/{code}/links/{warehouse_id} [delete]
func (h *ProductHandler) Unlink(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	warehouseID, err := requireParam(c, "warehouse_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Unlink(c.UserContext(), code, warehouseID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAliases godoc
// @Summary      Alias del producto
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código o alias"
// @Success      200   {object}  dto.ListResponse[string]
// @Router       /api/products/{code}/aliases [get]
func (h *ProductHandler) ListAliases(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	items, err := h.uc.ListAliases(c.UserContext(), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListResponse[string]{Items: items})
}

// AddAlias godoc
// @Summary      Agregar código alterno
// @Tags         products
// @Accept       json
// @Param        code  path  string            true  "Código o alias"
// @Param        body  body  dto.AliasRequest  true  "Alias"
// @Success      201
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{code}/aliases [post]
func (h *ProductHandler) AddAlias(c *fiber.Ctx) error {
	code, err := requireParam(c, "code")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AliasRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.AddAlias(c.UserContext(), code, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveAlias godoc
// @Summary      Eliminar alias
// @Tags         products
// @Param        alias  path  string  true  "Alias"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/aliases/{alias} [delete]
func (h *ProductHandler) RemoveAlias(c *fiber.Ctx) error {
	alias, err := requireParam(c, "alias")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RemoveAlias(c.UserContext(), alias); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
