// Package count implementa las sesiones de conteo físico y su conciliación
// contra el libro de movimientos. Un conteo avanza in_progress -> completed ->
// approved sin camino de regreso; completed es la foto contra la que se concilia.
package count

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// CountUseCase gestiona la captura del conteo: inicio, líneas y cierre.
// La aprobación vive en reconcile.go (es el motor de conciliación).
type CountUseCase struct {
	txRunner     TxRunner
	countRepo    repository.StockCountRepository
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
	storeRepo    repository.StoreRepository

	// pinExpectedToCompletion fija el corte del stock esperado en completed_at
	// en lugar del momento de la aprobación (configurable; la petición de
	// aprobación puede sobreescribirlo).
	pinExpectedToCompletion bool
}

// NewCountUseCase construye el caso de uso.
func NewCountUseCase(
	txRunner TxRunner,
	countRepo repository.StockCountRepository,
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	pinExpectedToCompletion bool,
) *CountUseCase {
	return &CountUseCase{
		txRunner:                txRunner,
		countRepo:               countRepo,
		movementRepo:            movementRepo,
		itemRepo:                itemRepo,
		storeRepo:               storeRepo,
		pinExpectedToCompletion: pinExpectedToCompletion,
	}
}

// Start crea un conteo en in_progress para una sede de la cuenta.
func (uc *CountUseCase) Start(ctx context.Context, accountID, userID string, in dto.StartCountRequest) (*entity.StockCount, error) {
	if in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.AccountID != accountID {
		return nil, domain.ErrNotFound
	}

	count := &entity.StockCount{
		AccountID: accountID,
		StoreID:   in.StoreID,
		UserID:    userID,
		Name:      in.Name,
		Status:    entity.CountStatusInProgress,
		CreatedAt: time.Now(),
	}
	if err := uc.countRepo.Create(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// AddEntry agrega una línea al conteo (solo in_progress; cantidad >= 0).
// El costo unitario se congela al costo vigente del item si el contador no lo
// envía. Un mismo item dos veces en el conteo produce ErrConflict.
func (uc *CountUseCase) AddEntry(ctx context.Context, accountID, countID string, in dto.CountEntryRequest) (*entity.StockEntry, error) {
	if in.ItemID == "" || in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.StockEntry
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.StockCountRepository,
		_ repository.MovementRepository,
		_ repository.NotificationRepository,
	) error {
		count, err := uc.requireCountForUpdate(ctx, countRepo, accountID, countID, entity.CountStatusInProgress)
		if err != nil {
			return err
		}
		item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.AccountID != accountID {
			return domain.ErrNotFound
		}

		unitCost := in.UnitCost
		if unitCost == nil {
			c := item.CostPrice
			unitCost = &c
		}
		entry = &entity.StockEntry{
			CountID:   countID,
			ItemID:    in.ItemID,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			CreatedAt: time.Now(),
		}
		if err := countRepo.CreateEntry(ctx, entry); err != nil {
			return err
		}
		count.ItemsCounted++
		return countRepo.Update(ctx, count)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry edita la cantidad (y opcionalmente el costo) de una línea,
// solo mientras el conteo sigue in_progress.
func (uc *CountUseCase) UpdateEntry(ctx context.Context, accountID, countID, entryID string, in dto.CountEntryRequest) (*entity.StockEntry, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.StockEntry
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.StockCountRepository,
		_ repository.MovementRepository,
		_ repository.NotificationRepository,
	) error {
		if _, err := uc.requireCountForUpdate(ctx, countRepo, accountID, countID, entity.CountStatusInProgress); err != nil {
			return err
		}
		existing, err := countRepo.GetEntryByID(ctx, countID, entryID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		existing.Quantity = in.Quantity
		if in.UnitCost != nil {
			existing.UnitCost = in.UnitCost
		}
		existing.UpdatedAt = time.Now()
		if err := countRepo.UpdateEntryQuantity(ctx, existing); err != nil {
			return err
		}
		entry = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry elimina una línea del conteo (solo in_progress) y decrementa
// el contador de items.
func (uc *CountUseCase) DeleteEntry(ctx context.Context, accountID, countID, entryID string) error {
	return uc.txRunner.RunCount(ctx, func(
		countRepo repository.StockCountRepository,
		_ repository.MovementRepository,
		_ repository.NotificationRepository,
	) error {
		count, err := uc.requireCountForUpdate(ctx, countRepo, accountID, countID, entity.CountStatusInProgress)
		if err != nil {
			return err
		}
		existing, err := countRepo.GetEntryByID(ctx, countID, entryID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := countRepo.DeleteEntry(ctx, countID, entryID); err != nil {
			return err
		}
		if count.ItemsCounted > 0 {
			count.ItemsCounted--
		}
		return countRepo.Update(ctx, count)
	})
}

// Complete cierra la captura: calcula totalValue = sum(cantidad x costo
// unitario congelado, o costo vigente del item si falta) y marca completed.
// Después de esto las líneas quedan congeladas como foto del conteo.
func (uc *CountUseCase) Complete(ctx context.Context, accountID, countID string, in dto.CompleteCountRequest) (*entity.StockCount, error) {
	var result *entity.StockCount
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.StockCountRepository,
		_ repository.MovementRepository,
		_ repository.NotificationRepository,
	) error {
		count, err := uc.requireCountForUpdate(ctx, countRepo, accountID, countID, entity.CountStatusInProgress)
		if err != nil {
			return err
		}
		entries, err := countRepo.ListEntries(ctx, countID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, e := range entries {
			cost, err := uc.entryCost(ctx, e)
			if err != nil {
				return err
			}
			total = total.Add(e.Quantity.Mul(cost))
		}

		now := time.Now()
		count.Status = entity.CountStatusCompleted
		count.TotalValue = total
		count.CompletedAt = &now
		if in.Notes != "" {
			count.Notes = in.Notes
		}
		if err := countRepo.Update(ctx, count); err != nil {
			return err
		}
		result = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve el conteo con sus líneas.
func (uc *CountUseCase) GetByID(ctx context.Context, accountID, countID string) (*entity.StockCount, []*entity.StockEntry, error) {
	count, err := uc.countRepo.GetByID(ctx, accountID, countID)
	if err != nil {
		return nil, nil, err
	}
	if count == nil {
		return nil, nil, domain.ErrNotFound
	}
	entries, err := uc.countRepo.ListEntries(ctx, countID)
	if err != nil {
		return nil, nil, err
	}
	return count, entries, nil
}

// List lista conteos de la cuenta, opcionalmente por sede.
func (uc *CountUseCase) List(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.StockCount, error) {
	return uc.countRepo.ListByAccount(ctx, accountID, storeID, limit, offset)
}

// requireCountForUpdate bloquea la fila del conteo y verifica su estado.
// Un estado distinto al requerido es ErrInvalidState (nunca muta nada).
func (uc *CountUseCase) requireCountForUpdate(
	ctx context.Context,
	countRepo repository.StockCountRepository,
	accountID, countID, requiredStatus string,
) (*entity.StockCount, error) {
	count, err := countRepo.GetForUpdate(ctx, accountID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if count.Status != requiredStatus {
		return nil, domain.ErrInvalidState
	}
	return count, nil
}

// entryCost devuelve el costo unitario de la línea: el congelado al contar o,
// en su defecto, el costo vigente del item.
func (uc *CountUseCase) entryCost(ctx context.Context, entry *entity.StockEntry) (decimal.Decimal, error) {
	if entry.UnitCost != nil {
		return *entry.UnitCost, nil
	}
	item, err := uc.itemRepo.GetByID(ctx, entry.ItemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return item.CostPrice, nil
}
