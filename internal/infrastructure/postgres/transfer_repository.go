package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

var transferColumns = []any{
	"id", "origin_location_id", "destination_location_id", "status", "note", "user_id", "created_at", "updated_at",
}

// TransferRepo transferencias e items sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste la cabecera; los items van por AddItem.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, origin_location_id, destination_location_id, status, note, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.OriginLocationID, t.DestinationLocationID, string(t.Status), t.Note, t.UserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// AddItem persiste un item de la transferencia.
func (r *TransferRepo) AddItem(ctx context.Context, it *entity.TransferItem) error {
	query := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.TransferID, it.ProductID, it.Quantity, it.Position); err != nil {
		return fmt.Errorf("add transfer item: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado; domain.ErrNotFound si la transferencia no existe.
func (r *TransferRepo) UpdateStatus(ctx context.Context, id string, status entity.TransferStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE transfers SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("transferencia", id)
	}
	return nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var (
		t      entity.Transfer
		status string
	)
	if err := row.Scan(&t.ID, &t.OriginLocationID, &t.DestinationLocationID, &status, &t.Note, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.TransferStatus(status)
	return &t, nil
}

// GetByID obtiene la transferencia con sus items en orden.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	query, args, err := dialect.From("transfers").Prepared(true).
		Select(transferColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build transfer query: %w", err)
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Transfer{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List filtra por estado, origen, destino y producto (cualquier item) y ordena por created_at DESC.
func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	ds := dialect.From("transfers").Prepared(true).Select(transferColumns...)
	if f.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(f.Status)))
	}
	if f.OriginID != "" {
		ds = ds.Where(goqu.C("origin_location_id").Eq(f.OriginID))
	}
	if f.DestinationID != "" {
		ds = ds.Where(goqu.C("destination_location_id").Eq(f.DestinationID))
	}
	if f.ProductID != "" {
		sub := dialect.From("transfer_items").Select("transfer_id").Where(goqu.C("product_id").Eq(f.ProductID))
		ds = ds.Where(goqu.C("id").In(sub))
	}
	query, args, err := ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build transfer query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems trae los items de todas las transferencias en una sola consulta.
func (r *TransferRepo) loadItems(ctx context.Context, transfers []*entity.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	ids := make([]string, 0, len(transfers))
	byID := make(map[string]*entity.Transfer, len(transfers))
	for _, t := range transfers {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	query, args, err := dialect.From("transfer_items").Prepared(true).
		Select("id", "transfer_id", "product_id", "quantity", "position").
		Where(goqu.C("transfer_id").In(ids)).
		Order(goqu.C("transfer_id").Asc(), goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build transfer items query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity, &it.Position); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		if t, ok := byID[it.TransferID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	return rows.Err()
}
