package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger en memoria (solo append).
type MovementRepo struct{ a access }

func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	return r.a.write(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == movement.ID {
				return domain.ErrDuplicate
			}
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.a.read(func(st *state) {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return
			}
		}
	})
	return out, nil
}

// List aplica el filtro y ordena por created_at DESC, id DESC, igual que la consulta SQL.
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.a.read(func(st *state) {
		for _, m := range st.movements {
			m := m
			if filter.Matches(&m) {
				out = append(out, &m)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
