package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// MovementQueryUseCase proyecciones de solo lectura sobre el ledger.
type MovementQueryUseCase struct {
	reader Repositories
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(reader Repositories) *MovementQueryUseCase {
	return &MovementQueryUseCase{reader: reader}
}

// MovementQuery filtros de List. Start/End forman la ventana [Start, End); todos opcionales.
type MovementQuery struct {
	ProductID  string
	LocationID string
	TransferID string
	Type       string
	Reason     string
	Start      *time.Time
	End        *time.Time
}

// GetByID devuelve el movimiento o domain.ErrNotFound.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.reader.Movements.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar movimiento: %w", err)
	}
	if m == nil {
		return nil, domain.NotFound("movimiento", id)
	}
	out, err := newCatalog(uc.reader).movementView(ctx, m)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List devuelve los movimientos que cumplen todos los filtros, del más reciente al más antiguo.
func (uc *MovementQueryUseCase) List(ctx context.Context, q MovementQuery) (*dto.MovementListResponse, error) {
	filter := repository.MovementFilter{
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		TransferID: q.TransferID,
		Type:       entity.MovementType(q.Type),
		Reason:     entity.MovementReason(q.Reason),
		Start:      q.Start,
		End:        q.End,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("tipo de movimiento desconocido: %q", q.Type)
	}
	if filter.Reason != "" && !filter.Reason.Valid() {
		return nil, domain.Invalid("motivo desconocido: %q", q.Reason)
	}
	if q.Start != nil && q.End != nil && !q.Start.Before(*q.End) {
		return nil, domain.Invalid("start debe ser anterior a end")
	}

	list, err := uc.reader.Movements.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	cat := newCatalog(uc.reader)
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		v, err := cat.movementView(ctx, m)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}
