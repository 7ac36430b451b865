// Package ledger implementa el libro de movimientos de inventario: registro
// append-only de eventos de cantidad firmados y agregación bajo demanda del
// stock actual por (item, sede).
package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/alert"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos y deriva agregados de stock y alertas.
// Los reads son puros; el único efecto es el insert del movimiento.
type LedgerUseCase struct {
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
	storeRepo    repository.StoreRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		storeRepo:    storeRepo,
	}
}

// Append valida y persiste un movimiento. La cantidad de un WASTE se fuerza
// negativa sin importar el signo que envíe el productor; para el resto de
// tipos un signo inconsistente es entrada inválida.
func (uc *LedgerUseCase) Append(ctx context.Context, accountID, userID string, in dto.AppendMovementRequest) (*entity.Movement, error) {
	if in.ItemID == "" || in.StoreID == "" || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	quantity := in.Quantity
	if in.Type == entity.MovementTypeWASTE && quantity.GreaterThan(decimal.Zero) {
		quantity = quantity.Neg()
	}
	if !entity.ValidateQuantitySign(in.Type, quantity) {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.requireItem(ctx, accountID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireStore(ctx, accountID, in.StoreID); err != nil {
		return nil, err
	}

	costPrice := item.CostPrice
	if in.CostPrice != nil && !in.CostPrice.IsNegative() {
		costPrice = *in.CostPrice
	}
	referenceType := in.ReferenceType
	if referenceType == "" {
		referenceType = entity.ReferenceTypeManual
	}

	movement := &entity.Movement{
		AccountID:     accountID,
		ItemID:        in.ItemID,
		StoreID:       in.StoreID,
		Quantity:      quantity,
		Type:          in.Type,
		Reason:        in.Reason,
		Notes:         in.Notes,
		ReferenceID:   in.ReferenceID,
		ReferenceType: referenceType,
		CostPrice:     costPrice,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	if err := uc.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	log.Debug().
		Str("account_id", accountID).
		Str("item_id", movement.ItemID).
		Str("store_id", movement.StoreID).
		Str("type", movement.Type).
		Str("quantity", movement.Quantity.String()).
		Msg("movimiento registrado")
	return movement, nil
}

// Correct registra un ADJUSTMENT compensatorio que lleva un movimiento manual
// a su nueva cantidad. El original nunca se muta: la corrección es un evento
// más del libro que lo referencia (reference_type = manual_correction).
func (uc *LedgerUseCase) Correct(ctx context.Context, accountID, userID, movementID string, in dto.CorrectMovementRequest) (*entity.Movement, error) {
	original, err := uc.movementRepo.GetByID(ctx, accountID, movementID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}
	if original.ReferenceType != entity.ReferenceTypeManual {
		return nil, domain.ErrInvalidState
	}

	delta := in.NewQuantity.Sub(original.Quantity)
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	reason := in.Reason
	if reason == "" {
		reason = "corrección manual"
	}
	correction := &entity.Movement{
		AccountID:     accountID,
		ItemID:        original.ItemID,
		StoreID:       original.StoreID,
		Quantity:      delta,
		Type:          entity.MovementTypeADJUSTMENT,
		Reason:        reason,
		Notes:         in.Notes,
		ReferenceID:   original.ID,
		ReferenceType: entity.ReferenceTypeManualCorrection,
		CostPrice:     original.CostPrice,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	if err := uc.movementRepo.Create(ctx, correction); err != nil {
		return nil, err
	}
	return correction, nil
}

// Aggregate devuelve la suma de cantidades firmadas del par (item, sede) con
// created_at < asOf. storeID vacío agrega todas las sedes; asOf nil = ahora.
func (uc *LedgerUseCase) Aggregate(ctx context.Context, accountID, itemID, storeID string, asOf *time.Time) (decimal.Decimal, error) {
	if itemID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if _, err := uc.requireItem(ctx, accountID, itemID); err != nil {
		return decimal.Zero, err
	}
	return uc.movementRepo.SumQuantity(ctx, accountID, itemID, storeID, asOf)
}

// CurrentStock devuelve el stock agregado por (item, sede), valorado al costo
// vigente de cada item, con las banderas de umbral evaluadas.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, accountID, storeID string) ([]dto.CurrentStockDTO, error) {
	aggregates, err := uc.movementRepo.AggregateAll(ctx, accountID, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrentStockDTO, 0, len(aggregates))
	for i := range aggregates {
		agg := &aggregates[i]
		out = append(out, dto.CurrentStockDTO{
			ItemID:        agg.ItemID,
			StoreID:       agg.StoreID,
			ItemName:      agg.ItemName,
			Unit:          agg.Unit,
			CategoryName:  agg.CategoryName,
			Quantity:      agg.Quantity,
			Value:         agg.Value,
			IsLowStock:    agg.IsLowStock(),
			IsOverStock:   agg.IsOverStock(),
			MinStockLevel: agg.MinStockLevel,
			MaxStockLevel: agg.MaxStockLevel,
		})
	}
	return out, nil
}

// Alerts evalúa el motor de alertas sobre los agregados actuales.
func (uc *LedgerUseCase) Alerts(ctx context.Context, accountID, storeID string) ([]dto.AlertDTO, error) {
	aggregates, err := uc.movementRepo.AggregateAll(ctx, accountID, storeID)
	if err != nil {
		return nil, err
	}
	alerts := alert.Evaluate(aggregates)
	out := make([]dto.AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertDTO{
			ItemID:          a.ItemID,
			StoreID:         a.StoreID,
			ItemName:        a.ItemName,
			Unit:            a.Unit,
			AlertType:       a.AlertType,
			Severity:        a.Severity,
			CurrentQuantity: a.CurrentQuantity,
			MinStockLevel:   a.MinStockLevel,
			MaxStockLevel:   a.MaxStockLevel,
		})
	}
	return out, nil
}

// List lista movimientos con filtros y paginación.
func (uc *LedgerUseCase) List(ctx context.Context, accountID string, in dto.ListMovementsRequest) ([]*entity.Movement, error) {
	in.DefaultPage()
	filter := repository.MovementFilter{
		StoreID: in.StoreID,
		ItemID:  in.ItemID,
		Type:    in.Type,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if in.From != "" {
		t, err := parseDate(in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := parseDate(in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.To = &t
	}
	return uc.movementRepo.List(ctx, accountID, filter)
}

func (uc *LedgerUseCase) requireItem(ctx context.Context, accountID, itemID string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.AccountID != accountID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *LedgerUseCase) requireStore(ctx context.Context, accountID, storeID string) (*entity.Store, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.AccountID != accountID {
		return nil, domain.ErrNotFound
	}
	return store, nil
}

// parseDate acepta RFC3339 o fecha corta YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
