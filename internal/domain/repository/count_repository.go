package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// CountRepository sesiones y líneas de conteo cíclico.
type CountRepository interface {
	CreateSession(ctx context.Context, session *entity.CountSession, lines []*entity.CountLine) error
	GetSession(ctx context.Context, id string) (*entity.CountSession, error)
	GetSessionForUpdate(ctx context.Context, id string) (*entity.CountSession, error)
	ListSessions(ctx context.Context, warehouseID string) ([]*entity.CountSession, error)
	ListLines(ctx context.Context, sessionID string) ([]*entity.CountLine, error)
	// SetCounted falla con domain.ErrNotFound si la línea no existe.
	SetCounted(ctx context.Context, sessionID, productID string, counted int64) error
	Close(ctx context.Context, sessionID, documentID string, closedAt time.Time) error
}
