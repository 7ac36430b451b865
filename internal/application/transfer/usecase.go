// Package transfer implementa la máquina de estados de traslados entre sedes
// y la emisión transaccional de los movimientos pareados en el libro.
package transfer

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// TransferUseCase gestiona el ciclo de vida de un traslado:
// PENDING -> IN_TRANSIT -> COMPLETED, PENDING -> COMPLETED (recepción directa),
// PENDING -> CANCELLED. Complete corre en una sola transacción.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	itemRepo     repository.ItemRepository
	storeRepo    repository.StoreRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		itemRepo:     itemRepo,
		storeRepo:    storeRepo,
	}
}

// Create valida y persiste el traslado en PENDING con sus líneas congeladas.
// Cabecera y líneas se insertan en una sola transacción: una falla en una
// línea no deja cabecera huérfana. Falla con ErrInvalidInput si origen y
// destino coinciden, si no hay líneas o si alguna cantidad es <= 0; con
// ErrNotFound si una sede o item no pertenece a la cuenta.
func (uc *TransferUseCase) Create(ctx context.Context, accountID, userID string, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.FromStoreID == "" || in.ToStoreID == "" || in.FromStoreID == in.ToStoreID || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	if err := uc.requireStore(ctx, accountID, in.FromStoreID); err != nil {
		return nil, err
	}
	if err := uc.requireStore(ctx, accountID, in.ToStoreID); err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if _, err := uc.requireItem(ctx, accountID, it.ItemID); err != nil {
			return nil, err
		}
	}

	transfer := &entity.Transfer{
		AccountID:   accountID,
		FromStoreID: in.FromStoreID,
		ToStoreID:   in.ToStoreID,
		Status:      entity.TransferStatusPENDING,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	for _, it := range in.Items {
		transfer.Items = append(transfer.Items, entity.TransferItem{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
		})
	}
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.MovementRepository,
	) error {
		return transferRepo.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// MarkInTransit pasa el traslado de PENDING a IN_TRANSIT. No emite movimientos.
func (uc *TransferUseCase) MarkInTransit(ctx context.Context, accountID, transferID string) (*entity.Transfer, error) {
	return uc.transition(ctx, accountID, transferID, entity.TransferStatusInTransit)
}

// Cancel pasa el traslado de PENDING a CANCELLED. No emite movimientos.
func (uc *TransferUseCase) Cancel(ctx context.Context, accountID, transferID string) (*entity.Transfer, error) {
	return uc.transition(ctx, accountID, transferID, entity.TransferStatusCANCELLED)
}

// transition aplica un cambio de estado puro bajo bloqueo de fila.
func (uc *TransferUseCase) transition(ctx context.Context, accountID, transferID, to string) (*entity.Transfer, error) {
	var result *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.MovementRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, accountID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransition(to) {
			return domain.ErrInvalidState
		}
		transfer.Status = to
		if err := transferRepo.UpdateStatus(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Complete emite, en una sola transacción, un TRANSFER_OUT en la sede origen y
// un TRANSFER_IN de igual magnitud en la destino por cada línea (costo = costo
// vigente del item), y marca el traslado COMPLETED. Una falla parcial deja el
// traslado y el libro exactamente como antes de la llamada.
func (uc *TransferUseCase) Complete(ctx context.Context, accountID, userID, transferID string) (*entity.Transfer, error) {
	// El costo vigente de cada item se lee dentro de la transacción; los items
	// ya fueron validados al crear el traslado.
	var result *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		movementRepo repository.MovementRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, accountID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransition(entity.TransferStatusCOMPLETED) {
			return domain.ErrInvalidState
		}

		now := time.Now()
		for _, line := range transfer.Items {
			item, err := uc.requireItem(ctx, accountID, line.ItemID)
			if err != nil {
				return err
			}
			out := &entity.Movement{
				AccountID:     accountID,
				ItemID:        line.ItemID,
				StoreID:       transfer.FromStoreID,
				Quantity:      line.Quantity.Neg(),
				Type:          entity.MovementTypeTransferOUT,
				ReferenceID:   transfer.ID,
				ReferenceType: entity.ReferenceTypeTransfer,
				CostPrice:     item.CostPrice,
				CreatedBy:     userID,
				CreatedAt:     now,
			}
			if err := movementRepo.Create(ctx, out); err != nil {
				return err
			}
			in := &entity.Movement{
				AccountID:     accountID,
				ItemID:        line.ItemID,
				StoreID:       transfer.ToStoreID,
				Quantity:      line.Quantity,
				Type:          entity.MovementTypeTransferIN,
				ReferenceID:   transfer.ID,
				ReferenceType: entity.ReferenceTypeTransfer,
				CostPrice:     item.CostPrice,
				CreatedBy:     userID,
				CreatedAt:     now,
			}
			if err := movementRepo.Create(ctx, in); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusCOMPLETED
		transfer.CompletedBy = userID
		transfer.CompletedAt = &now
		if err := transferRepo.UpdateStatus(ctx, transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("account_id", accountID).
		Str("transfer_id", result.ID).
		Int("items", len(result.Items)).
		Msg("traslado completado")
	return result, nil
}

// Delete borra el traslado solo mientras está PENDING.
func (uc *TransferUseCase) Delete(ctx context.Context, accountID, transferID string) error {
	return uc.txRunner.RunTransfer(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.MovementRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(ctx, accountID, transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.IsDeletable() {
			return domain.ErrInvalidState
		}
		return transferRepo.Delete(ctx, accountID, transferID)
	})
}

// GetByID devuelve el traslado con sus líneas.
func (uc *TransferUseCase) GetByID(ctx context.Context, accountID, transferID string) (*entity.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, accountID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista traslados de la cuenta, opcionalmente filtrados por sede.
func (uc *TransferUseCase) List(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.ListByAccount(ctx, accountID, storeID, limit, offset)
}

func (uc *TransferUseCase) requireItem(ctx context.Context, accountID, itemID string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.AccountID != accountID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *TransferUseCase) requireStore(ctx context.Context, accountID, storeID string) error {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil || store.AccountID != accountID {
		return domain.ErrNotFound
	}
	return nil
}
