// Package memory implementa los puertos del libro sobre mapas en memoria.
// Cada transacción trabaja sobre una copia del estado que reemplaza al original solo
// si fn termina sin error; las transacciones se ejecutan de a una.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type pairKey struct {
	product   string
	warehouse string
}

type data struct {
	products       map[string]entity.Product
	codes          map[string]string // code -> product id
	aliases        map[string]entity.ProductAlias
	warehouses     map[string]entity.Warehouse
	links          map[pairKey]struct{}
	stock          map[pairKey]entity.Stock
	movements      []entity.StockMovement
	seq            int64
	documents      map[string]entity.MovementDocument
	thresholds     map[pairKey]entity.ThresholdRule
	rules          map[pairKey]entity.ReplenishmentRule
	sessions       map[string]entity.CountSession
	lines          map[string][]entity.CountLine
	counterparties map[string]entity.Counterparty
	audit          []entity.AuditEvent
}

func newData() *data {
	return &data{
		products:       map[string]entity.Product{},
		codes:          map[string]string{},
		aliases:        map[string]entity.ProductAlias{},
		warehouses:     map[string]entity.Warehouse{},
		links:          map[pairKey]struct{}{},
		stock:          map[pairKey]entity.Stock{},
		documents:      map[string]entity.MovementDocument{},
		thresholds:     map[pairKey]entity.ThresholdRule{},
		rules:          map[pairKey]entity.ReplenishmentRule{},
		sessions:       map[string]entity.CountSession{},
		lines:          map[string][]entity.CountLine{},
		counterparties: map[string]entity.Counterparty{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia el estado. Los slices de solo inserción se comparten con capacidad recortada:
// un append en la copia siempre realoca.
func (d *data) clone() *data {
	c := &data{
		products:       cloneMap(d.products),
		codes:          cloneMap(d.codes),
		aliases:        cloneMap(d.aliases),
		warehouses:     cloneMap(d.warehouses),
		links:          cloneMap(d.links),
		stock:          cloneMap(d.stock),
		movements:      d.movements[:len(d.movements):len(d.movements)],
		seq:            d.seq,
		documents:      cloneMap(d.documents),
		thresholds:     cloneMap(d.thresholds),
		rules:          cloneMap(d.rules),
		sessions:       cloneMap(d.sessions),
		lines:          make(map[string][]entity.CountLine, len(d.lines)),
		counterparties: cloneMap(d.counterparties),
		audit:          d.audit[:len(d.audit):len(d.audit)],
	}
	for id, ls := range d.lines {
		c.lines[id] = copyLines(ls)
	}
	return c
}

func copyLines(ls []entity.CountLine) []entity.CountLine {
	out := make([]entity.CountLine, len(ls))
	for i, l := range ls {
		out[i] = l
		if l.CountedQty != nil {
			v := *l.CountedQty
			out[i].CountedQty = &v
		}
	}
	return out
}

// Store estado compartido en memoria. Seguro para uso concurrente.
type Store struct {
	txMu sync.Mutex   // serializa transacciones y escrituras fuera de ellas
	mu   sync.RWMutex // protege d
	d    *data
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia pasa a ser el estado.
func (s *Store) Run(ctx context.Context, fn func(tx inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.d.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(&view{d: work, tx: true})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.d = work
	s.mu.Unlock()
	return nil
}

// Repos repositorios fuera de transacción (lecturas y escrituras de un solo paso).
func (s *Store) Repos() inventory.Repos {
	return reposFor(&view{s: s})
}

// Audit repositorio de auditoría en memoria.
func (s *Store) Audit() *AuditRepo {
	return &AuditRepo{v: &view{s: s}}
}

// view acceso al estado: dentro de una tx usa la copia sin bloqueo; fuera toma los locks del Store.
type view struct {
	s  *Store
	d  *data
	tx bool
}

func nop() {}

func (v *view) read() (*data, func()) {
	if v.tx {
		return v.d, nop
	}
	v.s.mu.RLock()
	return v.s.d, v.s.mu.RUnlock
}

func (v *view) write() (*data, func()) {
	if v.tx {
		return v.d, nop
	}
	v.s.txMu.Lock()
	v.s.mu.Lock()
	return v.s.d, func() {
		v.s.mu.Unlock()
		v.s.txMu.Unlock()
	}
}

func reposFor(v *view) inventory.Repos {
	return inventory.Repos{
		Products:       &ProductRepo{v: v},
		Warehouses:     &WarehouseRepo{v: v},
		Stock:          &StockRepo{v: v},
		Movements:      &MovementRepo{v: v},
		Documents:      &DocumentRepo{v: v},
		Rules:          &RuleRepo{v: v},
		Counts:         &CountRepo{v: v},
		Counterparties: &CounterpartyRepo{v: v},
	}
}
