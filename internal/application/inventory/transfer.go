package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// TransferUseCase mueve varios productos de un local a otro como una sola operación todo-o-nada.
// Las mutaciones de saldo y ledger se delegan al MovementEngine dentro de la misma transacción.
type TransferUseCase struct {
	txRunner TxRunner
	engine   *MovementEngine
	reader   Repositories
	log      *logger.Logger
	now      Clock
}

// NewTransferUseCase construye el caso de uso. reader se usa para las consultas fuera de transacción.
func NewTransferUseCase(txRunner TxRunner, engine *MovementEngine, reader Repositories, log *logger.Logger, clock Clock) *TransferUseCase {
	if clock == nil {
		clock = systemClock
	}
	return &TransferUseCase{
		txRunner: txRunner,
		engine:   engine,
		reader:   reader,
		log:      log.Component("transfer"),
		now:      clock,
	}
}

// TransferItemInput producto y cantidad (>0) a transferir.
type TransferItemInput struct {
	ProductID string
	Quantity  int
}

// TransferInput entrada de CreateTransfer.
type TransferInput struct {
	OriginLocationID      string
	DestinationLocationID string
	Note                  string
	UserID                string
	Items                 []TransferItemInput
}

type balanceKey struct {
	productID  string
	locationID string
}

// CreateTransfer valida todos los items contra el saldo del origen antes de escribir nada y después
// aplica, por item, la pierna de salida en el origen y la de entrada en el destino.
// Termina con la transferencia en CONCLUIDA; cualquier error revierte todo.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, in TransferInput) (*dto.TransferResponse, error) {
	var out dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(repos Repositories) error {
		cat := newCatalog(repos)

		origin, err := cat.location(ctx, in.OriginLocationID)
		if err != nil {
			return err
		}
		destination, err := cat.location(ctx, in.DestinationLocationID)
		if err != nil {
			return err
		}
		if origin.ID == destination.ID {
			return domain.Invalid("origen y destino deben ser distintos")
		}
		if _, err := cat.user(ctx, in.UserID); err != nil {
			return err
		}
		if len(in.Items) == 0 {
			return domain.Invalid("la transferencia no tiene items")
		}

		products := make([]*entity.Product, len(in.Items))
		requested := make(map[string]int, len(in.Items))
		for i, it := range in.Items {
			if it.Quantity <= 0 {
				return domain.Invalid("item %d: la cantidad debe ser mayor que cero", i+1)
			}
			if it.Quantity > inventory.MaxQuantity {
				return domain.Invalid("item %d: la cantidad excede el máximo permitido (%d)", i+1, inventory.MaxQuantity)
			}
			p, err := cat.product(ctx, it.ProductID)
			if err != nil {
				return err
			}
			products[i] = p
			requested[p.ID] += it.Quantity
		}

		if err := uc.lockAndCheck(ctx, repos, cat, origin, destination, requested); err != nil {
			return err
		}

		now := uc.now()
		transfer := &entity.Transfer{
			ID:                    uuid.New().String(),
			OriginLocationID:      origin.ID,
			DestinationLocationID: destination.ID,
			Status:                entity.TransferPendente,
			Note:                  in.Note,
			UserID:                in.UserID,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := repos.Transfers.Create(ctx, transfer); err != nil {
			return fmt.Errorf("crear transferencia: %w", err)
		}

		for i, it := range in.Items {
			item := entity.TransferItem{
				ID:         uuid.New().String(),
				TransferID: transfer.ID,
				ProductID:  products[i].ID,
				Quantity:   it.Quantity,
				Position:   i,
			}
			if err := repos.Transfers.AddItem(ctx, &item); err != nil {
				return fmt.Errorf("guardar item de transferencia: %w", err)
			}
			transfer.Items = append(transfer.Items, item)

			if _, err := uc.engine.apply(ctx, repos, legCommand{
				product:     products[i],
				location:    origin,
				movType:     entity.MovementTransferencia,
				reason:      entity.ReasonEnvioTransferencia,
				quantity:    it.Quantity,
				note:        fmt.Sprintf("Transferência #%s para %s", transfer.ID, destination.Name),
				userID:      in.UserID,
				destination: destination.ID,
				transferID:  transfer.ID,
				leg:         entity.LegOutbound,
			}); err != nil {
				return err
			}
			if _, err := uc.engine.apply(ctx, repos, legCommand{
				product:    products[i],
				location:   destination,
				movType:    entity.MovementTransferencia,
				reason:     entity.ReasonRecebimentoTransferencia,
				quantity:   it.Quantity,
				note:       fmt.Sprintf("Transferência #%s de %s", transfer.ID, origin.Name),
				userID:     in.UserID,
				transferID: transfer.ID,
				leg:        entity.LegInbound,
			}); err != nil {
				return err
			}
		}

		if !transfer.Status.CanTransitionTo(entity.TransferConcluida) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrConflict, transfer.Status, entity.TransferConcluida)
		}
		transfer.Status = entity.TransferConcluida
		transfer.UpdatedAt = uc.now()
		if err := repos.Transfers.UpdateStatus(ctx, transfer.ID, transfer.Status, transfer.UpdatedAt); err != nil {
			return fmt.Errorf("concluir transferencia: %w", err)
		}

		out, err = cat.transferView(ctx, transfer)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transfer_id", out.ID).
		Str("origin_id", out.OriginLocationID).
		Str("destination_id", out.DestinationLocationID).
		Int("items", len(out.Items)).
		Msg("transferencia concluida")
	return &out, nil
}

// lockAndCheck bloquea todos los saldos involucrados en orden (producto, local) y verifica que el origen
// cubra la cantidad acumulada pedida por producto.
func (uc *TransferUseCase) lockAndCheck(
	ctx context.Context,
	repos Repositories,
	cat *catalog,
	origin, destination *entity.Location,
	requested map[string]int,
) error {
	keys := make([]balanceKey, 0, len(requested)*2)
	for productID := range requested {
		keys = append(keys,
			balanceKey{productID: productID, locationID: origin.ID},
			balanceKey{productID: productID, locationID: destination.ID},
		)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID < keys[j].productID
		}
		return keys[i].locationID < keys[j].locationID
	})

	for _, k := range keys {
		balance, err := repos.Balances.GetForUpdate(ctx, k.productID, k.locationID)
		if err != nil {
			return fmt.Errorf("bloquear saldo: %w", err)
		}
		if k.locationID != origin.ID {
			continue
		}
		if want := requested[k.productID]; balance.Quantity < want {
			p, err := cat.product(ctx, k.productID)
			if err != nil {
				return err
			}
			return &domain.InsufficientStockError{
				ProductName:  p.Name,
				LocationName: origin.Name,
				Available:    balance.Quantity,
				Requested:    want,
			}
		}
	}
	return nil
}

// GetByID devuelve la transferencia con sus items o domain.ErrNotFound.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.reader.Transfers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar transferencia: %w", err)
	}
	if t == nil {
		return nil, domain.NotFound("transferencia", id)
	}
	out, err := newCatalog(uc.reader).transferView(ctx, t)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TransferQuery filtros de List; todos opcionales.
type TransferQuery struct {
	Status        string
	OriginID      string
	DestinationID string
	ProductID     string
}

// List devuelve transferencias filtradas, más recientes primero.
func (uc *TransferUseCase) List(ctx context.Context, q TransferQuery) (*dto.TransferListResponse, error) {
	filter := repository.TransferFilter{
		Status:        entity.TransferStatus(q.Status),
		OriginID:      q.OriginID,
		DestinationID: q.DestinationID,
		ProductID:     q.ProductID,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("estado desconocido: %q", q.Status)
	}
	list, err := uc.reader.Transfers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar transferencias: %w", err)
	}
	cat := newCatalog(uc.reader)
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		v, err := cat.transferView(ctx, t)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &dto.TransferListResponse{Items: items, Total: len(items)}, nil
}
