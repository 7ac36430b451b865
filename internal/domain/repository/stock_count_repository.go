package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// StockCountRepository puerto de persistencia de conteos físicos y sus líneas.
type StockCountRepository interface {
	Create(ctx context.Context, count *entity.StockCount) error
	GetByID(ctx context.Context, accountID, id string) (*entity.StockCount, error)
	// GetForUpdate bloquea la fila del conteo (SELECT FOR UPDATE) para serializar
	// Complete/Approve concurrentes sobre el mismo conteo.
	GetForUpdate(ctx context.Context, accountID, id string) (*entity.StockCount, error)
	Update(ctx context.Context, count *entity.StockCount) error
	ListByAccount(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.StockCount, error)

	CreateEntry(ctx context.Context, entry *entity.StockEntry) error
	GetEntryByID(ctx context.Context, countID, entryID string) (*entity.StockEntry, error)
	UpdateEntryQuantity(ctx context.Context, entry *entity.StockEntry) error
	DeleteEntry(ctx context.Context, countID, entryID string) error
	ListEntries(ctx context.Context, countID string) ([]*entity.StockEntry, error)
	// SetEntryReconciliation escribe expected_quantity y discrepancy (write-once,
	// solo durante la aprobación).
	SetEntryReconciliation(ctx context.Context, entryID string, expected, discrepancy decimal.Decimal) error
}
