package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de notificación emitidos por el motor.
const (
	NotificationTypeDISCREPANCY = "DISCREPANCY"
)

// Notification es el evento estructurado que la conciliación emite cuando una
// aprobación genera al menos un ajuste. La entrega (email, push...) es
// responsabilidad de un colaborador externo; aquí solo se persiste el evento.
type Notification struct {
	ID                    string
	AccountID             string
	Type                  string
	CountID               string
	Shortages             int
	Surpluses             int
	TotalDiscrepancyValue decimal.Decimal
	CreatedAt             time.Time
}
