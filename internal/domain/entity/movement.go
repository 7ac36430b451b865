package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
// El signo de la cantidad debe coincidir con la dirección semántica del tipo.
const (
	MovementTypePURCHASE    = "PURCHASE"     // compra / entrada por factura (>= 0)
	MovementTypeWASTE       = "WASTE"        // merma (<= 0)
	MovementTypeTransferIN  = "TRANSFER_IN"  // recepción de traslado (>= 0)
	MovementTypeTransferOUT = "TRANSFER_OUT" // despacho de traslado (<= 0)
	MovementTypeADJUSTMENT  = "ADJUSTMENT"   // ajuste por conciliación o corrección (cualquier signo)
	MovementTypeSALE        = "SALE"         // venta sincronizada desde POS (<= 0)
)

// Origen de un movimiento (ReferenceType). ReferenceID apunta a la entidad productora.
const (
	ReferenceTypeInvoice          = "invoice"
	ReferenceTypeTransfer         = "transfer"
	ReferenceTypeCount            = "count"
	ReferenceTypeWasteReason      = "waste_reason"
	ReferenceTypeManual           = "manual"
	ReferenceTypeManualCorrection = "manual_correction"
)

// Razones de ajuste emitidas por la conciliación de conteos.
const (
	AdjustmentReasonSurplus  = "surplus"
	AdjustmentReasonShortage = "shortage"
)

// Movement es un evento de cantidad firmado en el libro de inventario.
// El libro es append-only: los movimientos nunca se editan ni se borran;
// una corrección manual se registra como un ADJUSTMENT que referencia al original.
type Movement struct {
	ID            string
	AccountID     string
	ItemID        string
	StoreID       string
	Quantity      decimal.Decimal // positivo = entrada, negativo = salida (kg/L/unidad)
	Type          string
	Reason        string
	Notes         string
	ReferenceID   string
	ReferenceType string
	CostPrice     decimal.Decimal // costo unitario congelado al momento del registro
	CreatedBy     string
	CreatedAt     time.Time
}

// ValidMovementType indica si el tipo pertenece al catálogo conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePURCHASE, MovementTypeWASTE, MovementTypeTransferIN,
		MovementTypeTransferOUT, MovementTypeADJUSTMENT, MovementTypeSALE:
		return true
	}
	return false
}

// ValidateQuantitySign verifica que la cantidad no sea cero y que su signo
// corresponda al tipo: WASTE/TRANSFER_OUT/SALE <= 0, PURCHASE/TRANSFER_IN >= 0,
// ADJUSTMENT acepta cualquier signo.
func ValidateQuantitySign(movementType string, quantity decimal.Decimal) bool {
	if quantity.IsZero() {
		return false
	}
	switch movementType {
	case MovementTypePURCHASE, MovementTypeTransferIN:
		return quantity.GreaterThan(decimal.Zero)
	case MovementTypeWASTE, MovementTypeTransferOUT, MovementTypeSALE:
		return quantity.LessThan(decimal.Zero)
	case MovementTypeADJUSTMENT:
		return true
	}
	return false
}
