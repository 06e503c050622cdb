// Package memory implementa los puertos del ledger en memoria. Se usa con STORAGE_DRIVER=memory
// (demos, desarrollo local) y en los tests de aplicación y HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type pairKey struct {
	productID  string
	locationID string
}

// state es la foto completa de los datos. Las transacciones trabajan sobre un clon y lo publican al confirmar.
type state struct {
	products  map[string]entity.Product
	locations map[string]entity.Location
	users     map[string]entity.User
	balances  map[pairKey]entity.Balance
	movements []entity.Movement
	transfers map[string]entity.Transfer
}

func newState() *state {
	return &state{
		products:  map[string]entity.Product{},
		locations: map[string]entity.Location{},
		users:     map[string]entity.User{},
		balances:  map[pairKey]entity.Balance{},
		transfers: map[string]entity.Transfer{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	c.movements = append(make([]entity.Movement, 0, len(s.movements)), s.movements...)
	for k, v := range s.transfers {
		v.Items = append([]entity.TransferItem(nil), v.Items...)
		c.transfers[k] = v
	}
	return c
}

// Store guarda el estado y serializa las transacciones con un mutex (un escritor a la vez).
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access abstrae cómo un repositorio llega al estado: directo (con lock propio) o dentro de una tx.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// autoCommit cada operación toma el lock del store.
type autoCommit struct{ s *Store }

func (a autoCommit) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a autoCommit) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	next := a.s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	a.s.st = next
	return nil
}

// txAccess opera sobre el clon de la transacción; el lock ya lo tiene Run.
type txAccess struct{ st *state }

func (t txAccess) read(fn func(st *state))              { fn(t.st) }
func (t txAccess) write(fn func(st *state) error) error { return fn(t.st) }

func repositories(a access) inventory.Repositories {
	return inventory.Repositories{
		Balances:  &BalanceRepo{a: a},
		Movements: &MovementRepo{a: a},
		Transfers: &TransferRepo{a: a},
		Products:  &ProductRepo{a: a},
		Locations: &LocationRepo{a: a},
		Users:     &UserRepo{a: a},
	}
}

// Repositories devuelve repositorios fuera de transacción (cada llamada se confirma sola).
func (s *Store) Repositories() inventory.Repositories {
	return repositories(autoCommit{s: s})
}

// Run ejecuta fn sobre un clon del estado con el lock exclusivo tomado; si fn no falla, el clon pasa a ser el estado.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(repositories(txAccess{st: next})); err != nil {
		return err
	}
	s.st = next
	return nil
}

// PutProduct registra un producto en el catálogo local (seed y tests).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

// PutLocation registra un local.
func (s *Store) PutLocation(l entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.locations[l.ID] = l
}

// PutUser registra un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}
