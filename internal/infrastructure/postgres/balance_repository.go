package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

const balanceColumns = `id, product_id, location_id, quantity, created_at, updated_at`

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

func scanBalance(row pgx.Row) (*entity.Balance, error) {
	var b entity.Balance
	if err := row.Scan(&b.ID, &b.ProductID, &b.LocationID, &b.Quantity, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Get obtiene el saldo de un producto en un local; nil si no existe.
func (r *BalanceRepo) Get(ctx context.Context, productID, locationID string) (*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 AND location_id = $2`
	b, err := scanBalance(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// GetForUpdate asegura la fila (INSERT ... ON CONFLICT DO NOTHING) y la bloquea con SELECT FOR UPDATE.
// Dos primeros escritores concurrentes terminan serializados sobre la misma fila.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Balance, error) {
	insert := `
		INSERT INTO stock_balances (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, 0, now(), now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), productID, locationID); err != nil {
		return nil, fmt.Errorf("ensure balance: %w", err)
	}
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	b, err := scanBalance(r.q.QueryRow(ctx, query, productID, locationID))
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return b, nil
}

// Upsert inserta o actualiza la cantidad (por producto y local).
func (r *BalanceRepo) Upsert(ctx context.Context, balance *entity.Balance) error {
	if balance.ID == "" {
		balance.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_balances (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, balance.ID, balance.ProductID, balance.LocationID, balance.Quantity, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// Create inserta un saldo nuevo; domain.ErrDuplicate si el par ya existe.
func (r *BalanceRepo) Create(ctx context.Context, balance *entity.Balance) error {
	query := `
		INSERT INTO stock_balances (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		balance.ID, balance.ProductID, balance.LocationID, balance.Quantity, balance.CreatedAt, balance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// GetByID obtiene un saldo por ID.
func (r *BalanceRepo) GetByID(ctx context.Context, id string) (*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE id = $1`
	b, err := scanBalance(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance by id: %w", err)
	}
	return b, nil
}

func (r *BalanceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 ORDER BY product_id, location_id`
	return r.list(ctx, "list balances by product", query, productID)
}

func (r *BalanceRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE location_id = $1 ORDER BY product_id, location_id`
	return r.list(ctx, "list balances by location", query, locationID)
}

// ListBelowMinimum saldos con quantity <= products.min_stock.
func (r *BalanceRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Balance, error) {
	query := `
		SELECT b.id, b.product_id, b.location_id, b.quantity, b.created_at, b.updated_at
		FROM stock_balances b
		JOIN products p ON p.id = b.product_id
		WHERE b.quantity <= p.min_stock
		ORDER BY b.product_id, b.location_id`
	return r.list(ctx, "list balances below minimum", query)
}

// TotalByProduct suma el producto en todos los locales (0 si no hay filas).
func (r *BalanceRepo) TotalByProduct(ctx context.Context, productID string) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_balances WHERE product_id = $1`
	var total int
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total by product: %w", err)
	}
	return total, nil
}

// SellableTotalByProduct suma solo los locales vendibles.
func (r *BalanceRepo) SellableTotalByProduct(ctx context.Context, productID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(b.quantity), 0)
		FROM stock_balances b
		JOIN locations l ON l.id = b.location_id
		WHERE b.product_id = $1 AND l.sellable`
	var total int
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sellable total by product: %w", err)
	}
	return total, nil
}

func (r *BalanceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Balance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
