package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un insumo del inventario (pollo, aceite, servilletas...).
// El CRUD de items es responsabilidad de otro módulo; aquí solo se lee para
// validar tenencia, valorar stock y evaluar umbrales de alerta.
type Item struct {
	ID            string
	AccountID     string
	Name          string
	Unit          string          // kg, L, unidad
	CategoryID    string
	CategoryName  string
	CostPrice     decimal.Decimal  // costo unitario vigente
	MinStockLevel *decimal.Decimal // nil = sin umbral mínimo
	MaxStockLevel *decimal.Decimal // nil = sin umbral máximo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
