package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
	"github.com/jhoicas/almacen-ledger/internal/domain"
)

func TestCounterparty_CRUD(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewCounterpartyUseCase(e.store.Repos().Counterparties)

	sup, err := uc.Create(e.ctx, dto.CounterpartyRequest{Kind: "supplier", Name: " Aceros  del Sur ", TaxID: " 900123 "})
	require.NoError(t, err)
	assert.Equal(t, "SUPPLIER", sup.Kind)
	assert.Equal(t, "Aceros del Sur", sup.Name)
	assert.Equal(t, "900123", sup.TaxID)

	_, err = uc.Create(e.ctx, dto.CounterpartyRequest{Kind: "CUSTOMER", Name: "Ferretería Centro"})
	require.NoError(t, err)

	all, err := uc.List(e.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	suppliers, err := uc.List(e.ctx, "supplier")
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, sup.ID, suppliers[0].ID)

	upd, err := uc.Update(e.ctx, sup.ID, dto.CounterpartyRequest{Kind: "SUPPLIER", Name: "Aceros SA", Email: "ventas@aceros.co"})
	require.NoError(t, err)
	assert.Equal(t, "Aceros SA", upd.Name)
	assert.Equal(t, "ventas@aceros.co", upd.Email)

	require.NoError(t, uc.Delete(e.ctx, sup.ID))
	assert.ErrorIs(t, uc.Delete(e.ctx, sup.ID), domain.ErrNotFound)
	_, err = uc.Update(e.ctx, sup.ID, dto.CounterpartyRequest{Kind: "SUPPLIER", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCounterparty_Validaciones(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewCounterpartyUseCase(e.store.Repos().Counterparties)

	_, err := uc.Create(e.ctx, dto.CounterpartyRequest{Kind: "BANCO", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(e.ctx, dto.CounterpartyRequest{Kind: "CUSTOMER", Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(e.ctx, "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
