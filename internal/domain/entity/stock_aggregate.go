package entity

import "github.com/shopspring/decimal"

// StockAggregate es el stock actual derivado de un par (item, sede).
// Nunca se persiste: se calcula sumando los movimientos del libro y se
// valora al costo vigente del item (no al costo histórico de cada movimiento).
type StockAggregate struct {
	ItemID        string
	StoreID       string
	ItemName      string
	Unit          string
	CategoryName  string
	Quantity      decimal.Decimal
	Value         decimal.Decimal // Quantity x costo vigente
	CostPrice     decimal.Decimal
	MinStockLevel *decimal.Decimal
	MaxStockLevel *decimal.Decimal
}

// IsLowStock indica si la cantidad está por debajo del umbral mínimo (si existe).
func (s *StockAggregate) IsLowStock() bool {
	return s.MinStockLevel != nil && s.Quantity.LessThan(*s.MinStockLevel)
}

// IsOverStock indica si la cantidad supera el umbral máximo (si existe).
func (s *StockAggregate) IsOverStock() bool {
	return s.MaxStockLevel != nil && s.Quantity.GreaterThan(*s.MaxStockLevel)
}
