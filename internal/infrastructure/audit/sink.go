// Package audit sinks del flujo de auditoría: log estructurado, repositorio y fan-out.
package audit

import (
	"context"

	"go.uber.org/multierr"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

var (
	_ inventory.AuditSink = (*LogSink)(nil)
	_ inventory.AuditSink = (*RepositorySink)(nil)
	_ inventory.AuditSink = (FanOut)(nil)
)

// LogSink escribe cada evento como una línea de log.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink sobre el logger de la app.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

// Record registra el evento en nivel info.
func (s *LogSink) Record(_ context.Context, e entity.AuditEvent) error {
	ev := s.log.Info().
		Str("audit_id", e.ID).
		Str("action", e.Action).
		Str("entity", e.Entity).
		Str("entity_id", e.EntityID)
	if e.UserID != "" {
		ev = ev.Str("user_id", e.UserID)
	}
	if len(e.Payload) > 0 {
		ev = ev.RawJSON("payload", e.Payload)
	}
	ev.Time("at", e.CreatedAt).Msg("audit")
	return nil
}

// RepositorySink persiste eventos; los fallos se registran en el log y se devuelven.
type RepositorySink struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewRepositorySink construye el sink persistente.
func NewRepositorySink(repo repository.AuditRepository, log *logger.Logger) *RepositorySink {
	return &RepositorySink{repo: repo, log: log.Named("audit")}
}

func (s *RepositorySink) Record(ctx context.Context, e entity.AuditEvent) error {
	if err := s.repo.Record(ctx, e); err != nil {
		s.log.Error().Err(err).Str("action", e.Action).Str("entity_id", e.EntityID).Msg("no se pudo persistir evento de auditoría")
		return err
	}
	return nil
}

// FanOut reparte cada evento a todos los sinks; un fallo no impide los demás.
type FanOut []inventory.AuditSink

// Record devuelve los errores combinados de los sinks.
func (f FanOut) Record(ctx context.Context, e entity.AuditEvent) error {
	var err error
	for _, s := range f {
		if s == nil {
			continue
		}
		err = multierr.Append(err, s.Record(ctx, e))
	}
	return err
}
