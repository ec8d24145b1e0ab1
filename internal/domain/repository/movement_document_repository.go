package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// MovementDocumentRepository define el puerto del registro de documentos.
type MovementDocumentRepository interface {
	// LockSeries serializa la asignación de folios de una serie hasta el fin de la transacción.
	LockSeries(ctx context.Context, series string) error
	// MaxFolio devuelve el mayor folio de la serie, 0 si no hay documentos.
	MaxFolio(ctx context.Context, series string) (int64, error)
	// Create falla con domain.ErrDuplicate si (serie, folio) ya existe.
	Create(ctx context.Context, doc *entity.MovementDocument) error
	GetByID(ctx context.Context, id string) (*entity.MovementDocument, error)
	List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.MovementDocument, error)
}
