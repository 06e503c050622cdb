package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
)

// BalanceUseCase reportes de saldo y creación explícita de saldos iniciales.
type BalanceUseCase struct {
	reader Repositories
	now    Clock
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(reader Repositories, clock Clock) *BalanceUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &BalanceUseCase{reader: reader, now: clock}
}

// ProductStock devuelve el total y el total vendible de un producto.
func (uc *BalanceUseCase) ProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	product, err := newCatalog(uc.reader).product(ctx, productID)
	if err != nil {
		return nil, err
	}
	total, err := uc.reader.Balances.TotalByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("total por producto: %w", err)
	}
	sellable, err := uc.reader.Balances.SellableTotalByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("total vendible por producto: %w", err)
	}
	return &dto.ProductStockResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Total:         total,
		SellableTotal: sellable,
	}, nil
}

// CreateBalance crea el saldo inicial de un par (producto, local). No pasa por el ledger;
// si el par ya existe devuelve domain.ErrDuplicate.
func (uc *BalanceUseCase) CreateBalance(ctx context.Context, in dto.CreateBalanceRequest) (*dto.BalanceResponse, error) {
	if in.Quantity < 0 {
		return nil, domain.Invalid("la cantidad no puede ser negativa")
	}
	if err := inventory.CheckQuantity(in.Quantity); err != nil {
		return nil, err
	}
	cat := newCatalog(uc.reader)
	if _, err := cat.product(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := cat.location(ctx, in.LocationID); err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Balance{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.reader.Balances.Create(ctx, b); err != nil {
		return nil, err
	}
	out, err := cat.balanceView(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID devuelve el saldo o domain.ErrNotFound.
func (uc *BalanceUseCase) GetByID(ctx context.Context, id string) (*dto.BalanceResponse, error) {
	b, err := uc.reader.Balances.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar saldo: %w", err)
	}
	if b == nil {
		return nil, domain.NotFound("saldo", id)
	}
	out, err := newCatalog(uc.reader).balanceView(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List devuelve los saldos de un producto o de un local (exactamente uno de los dos).
func (uc *BalanceUseCase) List(ctx context.Context, q dto.BalanceListQuery) (*dto.BalanceListResponse, error) {
	var (
		list []*entity.Balance
		err  error
	)
	switch {
	case q.ProductID != "" && q.LocationID != "":
		b, gerr := uc.reader.Balances.Get(ctx, q.ProductID, q.LocationID)
		if b != nil {
			list = []*entity.Balance{b}
		}
		err = gerr
	case q.ProductID != "":
		list, err = uc.reader.Balances.ListByProduct(ctx, q.ProductID)
	case q.LocationID != "":
		list, err = uc.reader.Balances.ListByLocation(ctx, q.LocationID)
	default:
		return nil, domain.Invalid("product_id o location_id es obligatorio")
	}
	if err != nil {
		return nil, fmt.Errorf("listar saldos: %w", err)
	}
	items, err := newCatalog(uc.reader).balanceViews(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceListResponse{Items: items, Total: len(items)}, nil
}

// ListLowStock saldos con cantidad <= estoque mínimo del producto.
func (uc *BalanceUseCase) ListLowStock(ctx context.Context) (*dto.BalanceListResponse, error) {
	list, err := uc.reader.Balances.ListBelowMinimum(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar estoque bajo: %w", err)
	}
	items, err := newCatalog(uc.reader).balanceViews(ctx, list)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceListResponse{Items: items, Total: len(items)}, nil
}
