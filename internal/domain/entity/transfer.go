package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre sedes.
const (
	TransferStatusPENDING   = "PENDING"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusCOMPLETED = "COMPLETED"
	TransferStatusCANCELLED = "CANCELLED"
)

// Transfer representa un traslado de stock entre dos sedes distintas.
// Los items quedan congelados al crearse; el estado gobierna la emisión de
// movimientos TRANSFER_OUT/TRANSFER_IN al completarse.
type Transfer struct {
	ID          string
	AccountID   string
	FromStoreID string
	ToStoreID   string
	Status      string
	Items       []TransferItem
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	CompletedBy string
	CompletedAt *time.Time
}

// TransferItem es una línea del traslado (cantidad siempre > 0).
type TransferItem struct {
	ID         string
	TransferID string
	ItemID     string
	Quantity   decimal.Decimal
}

// CanTransition valida la máquina de estados del traslado:
//
//	PENDING -> IN_TRANSIT -> COMPLETED
//	PENDING -> COMPLETED            (recepción directa)
//	PENDING -> CANCELLED
//
// COMPLETED y CANCELLED son terminales; IN_TRANSIT no admite cancelación.
func (t *Transfer) CanTransition(to string) bool {
	switch t.Status {
	case TransferStatusPENDING:
		return to == TransferStatusInTransit || to == TransferStatusCOMPLETED || to == TransferStatusCANCELLED
	case TransferStatusInTransit:
		return to == TransferStatusCOMPLETED
	}
	return false
}

// IsDeletable indica si el traslado puede borrarse (solo mientras está PENDING).
func (t *Transfer) IsDeletable() bool {
	return t.Status == TransferStatusPENDING
}
