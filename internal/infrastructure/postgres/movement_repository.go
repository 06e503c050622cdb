package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialecto postgres para goqu
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var dialect = goqu.Dialect("postgres")

var movementColumns = []any{
	"id", "product_id", "location_id", "type", "reason", "quantity", "quantity_before", "quantity_after",
	"note", "user_id", "destination_location_id", "transfer_id", "transfer_leg", "created_at",
}

// MovementRepo ledger sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, location_id, type, reason, quantity, quantity_before, quantity_after,
			note, user_id, destination_location_id, transfer_id, transfer_leg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.LocationID, string(m.Type), string(m.Reason), m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Note, m.UserID, nullable(m.DestinationLocationID), nullable(m.TransferID), nullable(string(m.TransferLeg)), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m                     entity.Movement
		movType, reason       string
		dest, transfer, legID *string
	)
	if err := row.Scan(
		&m.ID, &m.ProductID, &m.LocationID, &movType, &reason, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.Note, &m.UserID, &dest, &transfer, &legID, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	m.Reason = entity.MovementReason(reason)
	m.DestinationLocationID = deref(dest)
	m.TransferID = deref(transfer)
	m.TransferLeg = entity.TransferLeg(deref(legID))
	return &m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query, args, err := dialect.From("stock_movements").Prepared(true).
		Select(movementColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List filtra con AND sobre los campos presentes y ordena por created_at DESC, id DESC.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query, args, err := buildMovementQuery(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func buildMovementQuery(f repository.MovementFilter) (string, []any, error) {
	ds := dialect.From("stock_movements").Prepared(true).Select(movementColumns...)
	if f.ProductID != "" {
		ds = ds.Where(goqu.C("product_id").Eq(f.ProductID))
	}
	if f.LocationID != "" {
		ds = ds.Where(goqu.C("location_id").Eq(f.LocationID))
	}
	if f.TransferID != "" {
		ds = ds.Where(goqu.C("transfer_id").Eq(f.TransferID))
	}
	if f.Type != "" {
		ds = ds.Where(goqu.C("type").Eq(string(f.Type)))
	}
	if f.Reason != "" {
		ds = ds.Where(goqu.C("reason").Eq(string(f.Reason)))
	}
	if f.Start != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*f.Start))
	}
	if f.End != nil {
		ds = ds.Where(goqu.C("created_at").Lt(*f.End))
	}
	query, args, err := ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build movement query: %w", err)
	}
	return query, args, nil
}
