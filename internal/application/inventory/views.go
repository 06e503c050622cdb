package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// catalog resuelve productos, locales y usuarios con una caché por llamada
// para no repetir lookups al proyectar listas.
type catalog struct {
	repos     Repositories
	products  map[string]*entity.Product
	locations map[string]*entity.Location
	users     map[string]*entity.User
}

func newCatalog(repos Repositories) *catalog {
	return &catalog{
		repos:     repos,
		products:  map[string]*entity.Product{},
		locations: map[string]*entity.Location{},
		users:     map[string]*entity.User{},
	}
}

// product devuelve domain.ErrNotFound si no existe.
func (c *catalog) product(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := c.products[id]; ok {
		return p, nil
	}
	p, err := c.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if p == nil {
		return nil, domain.NotFound("producto", id)
	}
	c.products[id] = p
	return p, nil
}

func (c *catalog) location(ctx context.Context, id string) (*entity.Location, error) {
	if l, ok := c.locations[id]; ok {
		return l, nil
	}
	l, err := c.repos.Locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar local: %w", err)
	}
	if l == nil {
		return nil, domain.NotFound("local", id)
	}
	c.locations[id] = l
	return l, nil
}

func (c *catalog) user(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := c.users[id]; ok {
		return u, nil
	}
	u, err := c.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound("usuario", id)
	}
	c.users[id] = u
	return u, nil
}

// Las proyecciones toleran colaboradores ausentes (nombre vacío): el ledger es histórico
// y un producto o local puede haber sido retirado del catálogo después.

func (c *catalog) productLabel(ctx context.Context, id string) (name, sku string, minStock int, err error) {
	p, err := c.product(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", 0, nil
		}
		return "", "", 0, err
	}
	return p.Name, p.SKU, p.MinStock, nil
}

func (c *catalog) locationName(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	l, err := c.location(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return l.Name, nil
}

func (c *catalog) userName(ctx context.Context, id string) (string, error) {
	u, err := c.user(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.Name, nil
}

func (c *catalog) movementView(ctx context.Context, m *entity.Movement) (dto.MovementResponse, error) {
	name, sku, _, err := c.productLabel(ctx, m.ProductID)
	if err != nil {
		return dto.MovementResponse{}, err
	}
	locName, err := c.locationName(ctx, m.LocationID)
	if err != nil {
		return dto.MovementResponse{}, err
	}
	destName, err := c.locationName(ctx, m.DestinationLocationID)
	if err != nil {
		return dto.MovementResponse{}, err
	}
	userName, err := c.userName(ctx, m.UserID)
	if err != nil {
		return dto.MovementResponse{}, err
	}
	return dto.MovementResponse{
		ID:                      m.ID,
		ProductID:               m.ProductID,
		ProductName:             name,
		ProductSKU:              sku,
		LocationID:              m.LocationID,
		LocationName:            locName,
		Type:                    string(m.Type),
		Reason:                  string(m.Reason),
		Quantity:                m.Quantity,
		QuantityBefore:          m.QuantityBefore,
		QuantityAfter:           m.QuantityAfter,
		Note:                    m.Note,
		UserID:                  m.UserID,
		UserName:                userName,
		DestinationLocationID:   m.DestinationLocationID,
		DestinationLocationName: destName,
		TransferID:              m.TransferID,
		TransferLeg:             string(m.TransferLeg),
		CreatedAt:               m.CreatedAt,
	}, nil
}

func (c *catalog) transferView(ctx context.Context, t *entity.Transfer) (dto.TransferResponse, error) {
	originName, err := c.locationName(ctx, t.OriginLocationID)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	destName, err := c.locationName(ctx, t.DestinationLocationID)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	userName, err := c.userName(ctx, t.UserID)
	if err != nil {
		return dto.TransferResponse{}, err
	}
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		name, sku, _, err := c.productLabel(ctx, it.ProductID)
		if err != nil {
			return dto.TransferResponse{}, err
		}
		items = append(items, dto.TransferItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			ProductSKU:  sku,
			Quantity:    it.Quantity,
		})
	}
	return dto.TransferResponse{
		ID:                      t.ID,
		OriginLocationID:        t.OriginLocationID,
		OriginLocationName:      originName,
		DestinationLocationID:   t.DestinationLocationID,
		DestinationLocationName: destName,
		Status:                  string(t.Status),
		Note:                    t.Note,
		UserID:                  t.UserID,
		UserName:                userName,
		Items:                   items,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}, nil
}

func (c *catalog) balanceView(ctx context.Context, b *entity.Balance) (dto.BalanceResponse, error) {
	name, sku, minStock, err := c.productLabel(ctx, b.ProductID)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	locName, err := c.locationName(ctx, b.LocationID)
	if err != nil {
		return dto.BalanceResponse{}, err
	}
	return dto.BalanceResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		ProductName:  name,
		ProductSKU:   sku,
		LocationID:   b.LocationID,
		LocationName: locName,
		Quantity:     b.Quantity,
		MinStock:     minStock,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}, nil
}

func (c *catalog) balanceViews(ctx context.Context, list []*entity.Balance) ([]dto.BalanceResponse, error) {
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		v, err := c.balanceView(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
