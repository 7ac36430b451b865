package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromStoreID string                `json:"from_store_id"`
	ToStoreID   string                `json:"to_store_id"`
	Items       []TransferItemRequest `json:"items"`
	Notes       string                `json:"notes,omitempty"`
}

// TransferItemRequest una línea del traslado (cantidad > 0).
type TransferItemRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TransferResponse representación HTTP de un traslado.
type TransferResponse struct {
	ID          string                 `json:"id"`
	FromStoreID string                 `json:"from_store_id"`
	ToStoreID   string                 `json:"to_store_id"`
	Status      string                 `json:"status"`
	Items       []TransferItemResponse `json:"items"`
	Notes       string                 `json:"notes,omitempty"`
	CreatedBy   string                 `json:"created_by,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedBy string                 `json:"completed_by,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// TransferItemResponse línea del traslado en respuestas.
type TransferItemResponse struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}
