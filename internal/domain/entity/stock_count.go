package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un conteo físico. No hay camino de regreso:
// in_progress -> completed -> approved.
const (
	CountStatusInProgress = "in_progress"
	CountStatusCompleted  = "completed"
	CountStatusApproved   = "approved"
)

// StockCount es una sesión de conteo físico en una sede.
// Al completarse queda congelada como foto contra la que se concilia;
// al aprobarse se vuelve inmutable salvo los campos de auditoría.
type StockCount struct {
	ID               string
	AccountID        string
	StoreID          string
	UserID           string
	Name             string
	Status           string
	ItemsCounted     int
	TotalValue       decimal.Decimal // suma de cantidad contada x costo unitario (fijado en Complete)
	ExpectedValue    decimal.Decimal // fijado en la aprobación
	DiscrepancyValue decimal.Decimal // fijado en la aprobación
	Notes            string
	ApprovedBy       string
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// StockEntry es una línea de conteo: cantidad contada para un item.
// ExpectedQuantity y Discrepancy se escriben una sola vez, durante la aprobación.
type StockEntry struct {
	ID               string
	CountID          string
	ItemID           string
	Quantity         decimal.Decimal  // cantidad contada (>= 0)
	UnitCost         *decimal.Decimal // costo congelado al contar; nil = usar costo vigente del item
	ExpectedQuantity *decimal.Decimal
	Discrepancy      *decimal.Decimal // Quantity - ExpectedQuantity
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
