package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// MovementEngine es el único punto por el que cambia un saldo: bloquea la fila (SELECT FOR UPDATE),
// calcula la nueva cantidad, rechaza negativos y persiste saldo y movimiento en la misma transacción.
type MovementEngine struct {
	txRunner TxRunner
	log      *logger.Logger
	now      Clock
}

// NewMovementEngine construye el motor. clock puede ser nil (usa la hora del sistema).
func NewMovementEngine(txRunner TxRunner, log *logger.Logger, clock Clock) *MovementEngine {
	if clock == nil {
		clock = systemClock
	}
	return &MovementEngine{txRunner: txRunner, log: log.Component("movement_engine"), now: clock}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es la magnitud; ENTRADA/SAIDA/TRANSFERENCIA aplican la dirección internamente.
// DestinationLocationID es obligatorio solo para TRANSFERENCIA.
type MovementInput struct {
	ProductID             string
	LocationID            string
	Type                  entity.MovementType
	Reason                entity.MovementReason
	Quantity              int
	Note                  string
	UserID                string
	DestinationLocationID string
}

// legCommand movimiento ya resuelto que apply escribe. El orquestador de transferencias construye
// directamente las dos piernas; RecordMovement siempre registra la de salida.
type legCommand struct {
	product     *entity.Product
	location    *entity.Location
	movType     entity.MovementType
	reason      entity.MovementReason
	quantity    int
	note        string
	userID      string
	destination string
	transferID  string
	leg         entity.TransferLeg
}

// RecordMovement valida, resuelve referencias y aplica el movimiento. Cualquier error deja
// saldo y ledger como estaban.
func (e *MovementEngine) RecordMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}

	var out dto.MovementResponse
	err := e.txRunner.Run(ctx, func(repos Repositories) error {
		cat := newCatalog(repos)
		product, err := cat.product(ctx, in.ProductID)
		if err != nil {
			return err
		}
		location, err := cat.location(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if _, err := cat.user(ctx, in.UserID); err != nil {
			return err
		}
		cmd := legCommand{
			product:  product,
			location: location,
			movType:  in.Type,
			reason:   in.Reason,
			quantity: in.Quantity,
			note:     in.Note,
			userID:   in.UserID,
		}
		if in.Type == entity.MovementTransferencia {
			if _, err := cat.location(ctx, in.DestinationLocationID); err != nil {
				return err
			}
			cmd.destination = in.DestinationLocationID
			cmd.leg = entity.LegOutbound
		}

		mov, err := e.apply(ctx, repos, cmd)
		if err != nil {
			return err
		}
		out, err = cat.movementView(ctx, mov)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("movement_id", out.ID).
		Str("product_id", out.ProductID).
		Str("location_id", out.LocationID).
		Str("type", out.Type).
		Int("before", out.QuantityBefore).
		Int("after", out.QuantityAfter).
		Msg("movimiento registrado")
	return &out, nil
}

// apply bloquea el saldo (creándolo en 0 si no existe), calcula la nueva cantidad y escribe saldo y movimiento.
// Debe llamarse dentro de TxRunner.Run.
func (e *MovementEngine) apply(ctx context.Context, repos Repositories, cmd legCommand) (*entity.Movement, error) {
	balance, err := repos.Balances.GetForUpdate(ctx, cmd.product.ID, cmd.location.ID)
	if err != nil {
		return nil, fmt.Errorf("bloquear saldo: %w", err)
	}
	after, err := inventory.NextQuantity(balance.Quantity, cmd.quantity, cmd.movType, cmd.leg)
	if err != nil {
		return nil, err
	}
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductName:  cmd.product.Name,
			LocationName: cmd.location.Name,
			Available:    balance.Quantity,
			Requested:    inventory.Requested(cmd.quantity, cmd.movType),
		}
	}

	now := e.now()
	before := balance.Quantity
	balance.Quantity = after
	balance.UpdatedAt = now
	if err := repos.Balances.Upsert(ctx, balance); err != nil {
		return nil, fmt.Errorf("actualizar saldo: %w", err)
	}

	mov := &entity.Movement{
		ID:                    uuid.New().String(),
		ProductID:             cmd.product.ID,
		LocationID:            cmd.location.ID,
		Type:                  cmd.movType,
		Reason:                cmd.reason,
		Quantity:              cmd.quantity,
		QuantityBefore:        before,
		QuantityAfter:         after,
		Note:                  cmd.note,
		UserID:                cmd.userID,
		DestinationLocationID: cmd.destination,
		TransferID:            cmd.transferID,
		TransferLeg:           cmd.leg,
		CreatedAt:             now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("guardar movimiento: %w", err)
	}
	return mov, nil
}

func validateMovement(in MovementInput) error {
	if !in.Type.Valid() {
		return domain.Invalid("tipo de movimiento desconocido: %q", in.Type)
	}
	if !in.Reason.Valid() {
		return domain.Invalid("motivo desconocido: %q", in.Reason)
	}
	if err := inventory.CheckQuantity(in.Quantity); err != nil {
		return err
	}
	switch in.Type {
	case entity.MovementEntrada:
		if in.Quantity <= 0 {
			return domain.Invalid("la cantidad de una entrada debe ser mayor que cero")
		}
	case entity.MovementSaida:
		if in.Quantity == 0 {
			return domain.Invalid("la cantidad no puede ser cero")
		}
	case entity.MovementTransferencia:
		if in.Quantity == 0 {
			return domain.Invalid("la cantidad no puede ser cero")
		}
		if in.DestinationLocationID == "" {
			return domain.Invalid("una transferencia requiere local de destino")
		}
		if in.DestinationLocationID == in.LocationID {
			return domain.Invalid("origen y destino deben ser distintos")
		}
	}
	return nil
}
