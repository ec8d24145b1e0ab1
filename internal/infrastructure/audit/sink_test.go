package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/audit"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

type failingSink struct{ err error }

func (f failingSink) Record(context.Context, entity.AuditEvent) error { return f.err }

func event() entity.AuditEvent {
	return entity.AuditEvent{
		ID:        "a1",
		Action:    "stock.decrement",
		Entity:    "stock",
		EntityID:  "p1:w1",
		UserID:    "u1",
		Payload:   json.RawMessage(`{"qty":-3}`),
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLogSink_EscribeCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	require.NoError(t, audit.NewLogSink(log).Record(context.Background(), event()))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stock.decrement", line["action"])
	assert.Equal(t, "audit", line["component"])
	assert.Equal(t, map[string]any{"qty": float64(-3)}, line["payload"])
}

func TestFanOut_EntregaATodosYCombinaErrores(t *testing.T) {
	store := memory.NewStore()
	repoSink := audit.NewRepositorySink(store.Audit(), logger.Nop())
	e1, e2 := errors.New("uno"), errors.New("dos")

	err := audit.FanOut{failingSink{e1}, repoSink, nil, failingSink{e2}}.Record(context.Background(), event())

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)

	stored, err := store.Audit().List(context.Background(), "stock", "p1:w1", 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "a1", stored[0].ID)
}
