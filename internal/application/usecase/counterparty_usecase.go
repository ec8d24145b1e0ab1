package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// CounterpartyUseCase proveedores y clientes usados como contraparte de documentos.
type CounterpartyUseCase struct {
	repo repository.CounterpartyRepository
}

// NewCounterpartyUseCase construye el caso de uso.
func NewCounterpartyUseCase(repo repository.CounterpartyRepository) *CounterpartyUseCase {
	return &CounterpartyUseCase{repo: repo}
}

func normalizeKind(kind string) (string, error) {
	k := strings.ToUpper(strings.TrimSpace(kind))
	if k != entity.CounterpartySupplier && k != entity.CounterpartyCustomer {
		return "", domain.Invalid("tipo de tercero %q", kind)
	}
	return k, nil
}

// Create registra un tercero.
func (uc *CounterpartyUseCase) Create(ctx context.Context, in dto.CounterpartyRequest) (*dto.CounterpartyResponse, error) {
	kind, err := normalizeKind(in.Kind)
	if err != nil {
		return nil, err
	}
	c := &entity.Counterparty{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      domaininv.NormalizeName(in.Name),
		TaxID:     strings.TrimSpace(in.TaxID),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Note:      in.Note,
		CreatedAt: time.Now(),
	}
	if c.Name == "" {
		return nil, domain.Invalid("nombre vacío")
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCounterpartyResponse(c), nil
}

// Update reemplaza los datos del tercero.
func (uc *CounterpartyUseCase) Update(ctx context.Context, id string, in dto.CounterpartyRequest) (*dto.CounterpartyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("tercero", id)
	}
	kind, err := normalizeKind(in.Kind)
	if err != nil {
		return nil, err
	}
	c.Kind = kind
	c.Name = domaininv.NormalizeName(in.Name)
	c.TaxID = strings.TrimSpace(in.TaxID)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Note = in.Note
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCounterpartyResponse(c), nil
}

// List terceros por tipo (vacío = todos), ordenados por nombre.
func (uc *CounterpartyUseCase) List(ctx context.Context, kind string) ([]dto.CounterpartyResponse, error) {
	if kind != "" {
		k, err := normalizeKind(kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CounterpartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCounterpartyResponse(c))
	}
	return items, nil
}

// Delete elimina un tercero.
func (uc *CounterpartyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCounterpartyResponse(c *entity.Counterparty) *dto.CounterpartyResponse {
	return &dto.CounterpartyResponse{
		ID:        c.ID,
		Kind:      c.Kind,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
	}
}
