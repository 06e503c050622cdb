package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos en memoria.
type BalanceRepo struct{ a access }

func (r *BalanceRepo) Get(_ context.Context, productID, locationID string) (*entity.Balance, error) {
	var out *entity.Balance
	r.a.read(func(st *state) {
		if b, ok := st.balances[pairKey{productID, locationID}]; ok {
			out = &b
		}
	})
	return out, nil
}

// GetForUpdate crea la fila en 0 si falta. El "lock" es el mutex que ya tiene la transacción.
func (r *BalanceRepo) GetForUpdate(_ context.Context, productID, locationID string) (*entity.Balance, error) {
	var out entity.Balance
	err := r.a.write(func(st *state) error {
		k := pairKey{productID, locationID}
		b, ok := st.balances[k]
		if !ok {
			b = entity.Balance{ID: uuid.New().String(), ProductID: productID, LocationID: locationID}
			st.balances[k] = b
		}
		out = b
		return nil
	})
	return &out, err
}

func (r *BalanceRepo) Upsert(_ context.Context, balance *entity.Balance) error {
	return r.a.write(func(st *state) error {
		k := pairKey{balance.ProductID, balance.LocationID}
		cur, ok := st.balances[k]
		if !ok {
			if balance.ID == "" {
				balance.ID = uuid.New().String()
			}
			if balance.CreatedAt.IsZero() {
				balance.CreatedAt = balance.UpdatedAt
			}
			st.balances[k] = *balance
			return nil
		}
		cur.Quantity = balance.Quantity
		cur.UpdatedAt = balance.UpdatedAt
		if cur.CreatedAt.IsZero() {
			cur.CreatedAt = balance.UpdatedAt
		}
		st.balances[k] = cur
		return nil
	})
}

func (r *BalanceRepo) Create(_ context.Context, balance *entity.Balance) error {
	return r.a.write(func(st *state) error {
		k := pairKey{balance.ProductID, balance.LocationID}
		if _, ok := st.balances[k]; ok {
			return domain.ErrDuplicate
		}
		st.balances[k] = *balance
		return nil
	})
}

func (r *BalanceRepo) GetByID(_ context.Context, id string) (*entity.Balance, error) {
	var out *entity.Balance
	r.a.read(func(st *state) {
		for _, b := range st.balances {
			if b.ID == id {
				b := b
				out = &b
				return
			}
		}
	})
	return out, nil
}

func (r *BalanceRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Balance, error) {
	return r.filter(func(_ *state, b entity.Balance) bool { return b.ProductID == productID }), nil
}

func (r *BalanceRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.Balance, error) {
	return r.filter(func(_ *state, b entity.Balance) bool { return b.LocationID == locationID }), nil
}

func (r *BalanceRepo) TotalByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	r.a.read(func(st *state) {
		for _, b := range st.balances {
			if b.ProductID == productID {
				total += b.Quantity
			}
		}
	})
	return total, nil
}

func (r *BalanceRepo) SellableTotalByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	r.a.read(func(st *state) {
		for _, b := range st.balances {
			if b.ProductID == productID && st.locations[b.LocationID].Sellable {
				total += b.Quantity
			}
		}
	})
	return total, nil
}

func (r *BalanceRepo) ListBelowMinimum(_ context.Context) ([]*entity.Balance, error) {
	return r.filter(func(st *state, b entity.Balance) bool {
		p, ok := st.products[b.ProductID]
		return ok && b.Quantity <= p.MinStock
	}), nil
}

// filter devuelve copias ordenadas por (producto, local) para que las lecturas sean estables.
func (r *BalanceRepo) filter(keep func(st *state, b entity.Balance) bool) []*entity.Balance {
	var out []*entity.Balance
	r.a.read(func(st *state) {
		for _, b := range st.balances {
			if keep(st, b) {
				b := b
				out = append(out, &b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}
