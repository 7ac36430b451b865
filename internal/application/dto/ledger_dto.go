package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppendMovementRequest body para POST /api/inventory/movements.
// Los productores externos (importación de facturas, merma, POS) envían este
// mismo cuerpo con su reference_type correspondiente.
type AppendMovementRequest struct {
	ItemID        string           `json:"item_id"`
	StoreID       string           `json:"store_id"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Reason        string           `json:"reason,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"` // nil = costo vigente del item
}

// CorrectMovementRequest body para POST /api/inventory/movements/:id/corrections.
// La corrección no muta el movimiento original: registra un ADJUSTMENT
// compensatorio con la diferencia hacia la nueva cantidad.
type CorrectMovementRequest struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	StoreID       string          `json:"store_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListMovementsRequest query params para GET /api/inventory/movements.
type ListMovementsRequest struct {
	StoreID string `query:"store_id"`
	ItemID  string `query:"item_id"`
	Type    string `query:"type"`
	From    string `query:"from"` // RFC3339 o fecha YYYY-MM-DD
	To      string `query:"to"`
	PageRequest
}
