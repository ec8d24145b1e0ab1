package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/multierr"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
)

// ImportHandler encola importaciones masivas en el worker de fondo.
type ImportHandler struct {
	worker *usecase.ImportWorker
}

// NewImportHandler construye el handler.
func NewImportHandler(worker *usecase.ImportWorker) *ImportHandler {
	return &ImportHandler{worker: worker}
}

// Import godoc
// @Summary      Importar existencias a una bodega
// @Description  Filas ya parseadas. mode=add suma, mode=replace reemplaza. Una fila fallida no detiene las demás.
// @Tags         imports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "Filas"
// @Success      200   {object}  dto.ImportSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	ctx := c.UserContext()
	done, err := h.worker.Submit(ctx, usecase.ImportJob{
		WarehouseID: in.WarehouseID,
		Mode:        in.Mode,
		UserID:      userOr(c, in.UserID),
		Rows:        in.Rows,
	})
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IMPORT_UNAVAILABLE", Message: err.Error()})
	}
	var sum usecase.ImportSummary
	select {
	case sum = <-done:
	case <-ctx.Done():
		return respondError(c, ctx.Err())
	}
	out := dto.ImportSummaryResponse{Total: sum.Total, Created: sum.Created, Linked: sum.Linked, Failed: sum.Failed}
	for _, e := range multierr.Errors(sum.Err) {
		out.Errors = append(out.Errors, e.Error())
	}
	return c.JSON(out)
}
