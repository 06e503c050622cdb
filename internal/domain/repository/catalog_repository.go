package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// Puertos de consulta hacia los colaboradores de catálogo. El ledger solo lee:
// la creación y desactivación de productos, locales y usuarios pertenece a sus servicios CRUD.
// Todos devuelven (nil, nil) cuando el id no existe.

// ProductRepository resuelve productos.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// LocationRepository resuelve locales de estoque.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
}

// UserRepository resuelve actores.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
