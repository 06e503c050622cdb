package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo transferencias en memoria.
type TransferRepo struct{ a access }

func (r *TransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.transfers[transfer.ID]; ok {
			return domain.ErrDuplicate
		}
		t := *transfer
		t.Items = nil
		st.transfers[t.ID] = t
		return nil
	})
}

func (r *TransferRepo) AddItem(_ context.Context, item *entity.TransferItem) error {
	return r.a.write(func(st *state) error {
		t, ok := st.transfers[item.TransferID]
		if !ok {
			return domain.NotFound("transferencia", item.TransferID)
		}
		t.Items = append(t.Items, *item)
		st.transfers[t.ID] = t
		return nil
	})
}

func (r *TransferRepo) UpdateStatus(_ context.Context, id string, status entity.TransferStatus, at time.Time) error {
	return r.a.write(func(st *state) error {
		t, ok := st.transfers[id]
		if !ok {
			return domain.NotFound("transferencia", id)
		}
		t.Status = status
		t.UpdatedAt = at
		st.transfers[id] = t
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	r.a.read(func(st *state) {
		if t, ok := st.transfers[id]; ok {
			t.Items = sortedItems(t.Items)
			out = &t
		}
	})
	return out, nil
}

func (r *TransferRepo) List(_ context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	r.a.read(func(st *state) {
		for _, t := range st.transfers {
			t := t
			if filter.Matches(&t) {
				t.Items = sortedItems(t.Items)
				out = append(out, &t)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func sortedItems(items []entity.TransferItem) []entity.TransferItem {
	out := append([]entity.TransferItem(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
