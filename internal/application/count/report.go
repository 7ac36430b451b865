package count

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de discrepancias de un conteo aprobado.
type ReportUseCase struct {
	countRepo repository.StockCountRepository
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso del reporte.
func NewReportUseCase(
	countRepo repository.StockCountRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	generator ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		countRepo: countRepo,
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
		generator: generator,
	}
}

// Generate arma las líneas del reporte y delega el render al generador.
// Solo un conteo approved tiene expected/discrepancy completos; para cualquier
// otro estado devuelve ErrInvalidState.
func (uc *ReportUseCase) Generate(ctx context.Context, accountID, countID string) ([]byte, error) {
	count, err := uc.countRepo.GetByID(ctx, accountID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	if count.Status != entity.CountStatusApproved {
		return nil, domain.ErrInvalidState
	}

	store, err := uc.storeRepo.GetByID(ctx, count.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	entries, err := uc.countRepo.ListEntries(ctx, countID)
	if err != nil {
		return nil, err
	}

	lines := make([]ReportLine, 0, len(entries))
	for _, e := range entries {
		item, err := uc.itemRepo.GetByID(ctx, e.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		line := ReportLine{
			ItemName: item.Name,
			Unit:     item.Unit,
			Counted:  e.Quantity,
			UnitCost: item.CostPrice,
		}
		if e.UnitCost != nil {
			line.UnitCost = *e.UnitCost
		}
		if e.ExpectedQuantity != nil {
			line.Expected = *e.ExpectedQuantity
		}
		if e.Discrepancy != nil {
			line.Discrepancy = *e.Discrepancy
		}
		line.Value = line.Discrepancy.Mul(line.UnitCost)
		lines = append(lines, line)
	}

	return uc.generator.GenerateCountReport(ctx, count, store, lines)
}
