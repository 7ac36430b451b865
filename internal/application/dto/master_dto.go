package dto

import "github.com/shopspring/decimal"

// ItemResponse lectura de un item para los listados de referencia.
type ItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	CategoryName  string           `json:"category_name,omitempty"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
	MaxStockLevel *decimal.Decimal `json:"max_stock_level,omitempty"`
}

// StoreResponse lectura de una sede.
type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// NotificationResponse evento de discrepancia persistido.
type NotificationResponse struct {
	ID                    string          `json:"id"`
	Type                  string          `json:"type"`
	CountID               string          `json:"count_id"`
	Shortages             int             `json:"shortages"`
	Surpluses             int             `json:"surpluses"`
	TotalDiscrepancyValue decimal.Decimal `json:"total_discrepancy_value"`
}
