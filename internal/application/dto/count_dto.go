package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartCountRequest body para POST /api/counts.
type StartCountRequest struct {
	StoreID string `json:"store_id"`
	Name    string `json:"name,omitempty"`
}

// CountEntryRequest body para agregar o editar una línea de conteo.
type CountEntryRequest struct {
	ItemID   string           `json:"item_id"`
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"` // nil = costo vigente del item
}

// CompleteCountRequest body para POST /api/counts/:id/complete.
type CompleteCountRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ApproveCountRequest body para POST /api/counts/:id/approve.
// PinToCompletion fija el corte del stock esperado en completed_at en lugar del
// momento de la aprobación (cierra la ventana de carrera entre conteo y aprobación).
type ApproveCountRequest struct {
	AdjustmentNotes string `json:"adjustment_notes,omitempty"`
	PinToCompletion *bool  `json:"pin_to_completion,omitempty"` // nil = valor de configuración
}

// CountResponse representación HTTP de un conteo.
type CountResponse struct {
	ID               string               `json:"id"`
	StoreID          string               `json:"store_id"`
	UserID           string               `json:"user_id"`
	Name             string               `json:"name,omitempty"`
	Status           string               `json:"status"`
	ItemsCounted     int                  `json:"items_counted"`
	TotalValue       decimal.Decimal      `json:"total_value"`
	ExpectedValue    decimal.Decimal      `json:"expected_value"`
	DiscrepancyValue decimal.Decimal      `json:"discrepancy_value"`
	Notes            string               `json:"notes,omitempty"`
	ApprovedBy       string               `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time           `json:"approved_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	CompletedAt      *time.Time           `json:"completed_at,omitempty"`
	Entries          []CountEntryResponse `json:"entries,omitempty"`
}

// CountEntryResponse una línea de conteo en respuestas.
type CountEntryResponse struct {
	ID               string           `json:"id"`
	ItemID           string           `json:"item_id"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	ExpectedQuantity *decimal.Decimal `json:"expected_quantity,omitempty"`
	Discrepancy      *decimal.Decimal `json:"discrepancy,omitempty"`
}

// ApproveCountResult resumen devuelto por la aprobación.
type ApproveCountResult struct {
	Count                 CountResponse   `json:"count"`
	Adjustments           int             `json:"adjustments"`
	Shortages             int             `json:"shortages"`
	Surpluses             int             `json:"surpluses"`
	TotalDiscrepancyValue decimal.Decimal `json:"total_discrepancy_value"`
}
