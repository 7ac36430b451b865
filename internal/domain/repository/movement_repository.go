package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	StoreID string
	ItemID  string
	Type    string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// MovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// El libro es insert-only: no existen Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, accountID, id string) (*entity.Movement, error)
	// SumQuantity suma las cantidades firmadas del par (item, sede) con created_at < asOf.
	// storeID vacío agrega todas las sedes; asOf nil equivale a "ahora".
	SumQuantity(ctx context.Context, accountID, itemID, storeID string, asOf *time.Time) (decimal.Decimal, error)
	// AggregateAll agrupa por (item, sede) y une con la metadata del item
	// (nombre, unidad, categoría, umbrales, costo vigente).
	AggregateAll(ctx context.Context, accountID, storeID string) ([]entity.StockAggregate, error)
	List(ctx context.Context, accountID string, filter MovementFilter) ([]*entity.Movement, error)
}
