package master

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// MasterUseCase expone los datos de referencia (items, sedes) y las
// notificaciones de discrepancia. Solo lectura: el catálogo se administra
// fuera de este servicio.
type MasterUseCase struct {
	itemRepo         repository.ItemRepository
	storeRepo        repository.StoreRepository
	notificationRepo repository.NotificationRepository
}

// NewMasterUseCase construye el caso de uso.
func NewMasterUseCase(
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	notificationRepo repository.NotificationRepository,
) *MasterUseCase {
	return &MasterUseCase{
		itemRepo:         itemRepo,
		storeRepo:        storeRepo,
		notificationRepo: notificationRepo,
	}
}

// ListItems devuelve el catálogo de items de la cuenta.
func (uc *MasterUseCase) ListItems(ctx context.Context, accountID string, limit, offset int) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			Unit:          it.Unit,
			CategoryName:  it.CategoryName,
			CostPrice:     it.CostPrice,
			MinStockLevel: it.MinStockLevel,
			MaxStockLevel: it.MaxStockLevel,
		})
	}
	return out, nil
}

// ListStores devuelve las sedes de la cuenta.
func (uc *MasterUseCase) ListStores(ctx context.Context, accountID string, limit, offset int) ([]dto.StoreResponse, error) {
	stores, err := uc.storeRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreResponse{ID: s.ID, Name: s.Name, Address: s.Address})
	}
	return out, nil
}

// ListNotifications devuelve los eventos de discrepancia registrados por las
// aprobaciones de conteo, más reciente primero.
func (uc *MasterUseCase) ListNotifications(ctx context.Context, accountID string, limit, offset int) ([]dto.NotificationResponse, error) {
	rows, err := uc.notificationRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, dto.NotificationResponse{
			ID:                    n.ID,
			Type:                  n.Type,
			CountID:               n.CountID,
			Shortages:             n.Shortages,
			Surpluses:             n.Surpluses,
			TotalDiscrepancyValue: n.TotalDiscrepancyValue,
		})
	}
	return out, nil
}
