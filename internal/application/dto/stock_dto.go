package dto

import "github.com/shopspring/decimal"

// CurrentStockDTO una fila de GET /api/inventory/stock.
type CurrentStockDTO struct {
	ItemID        string           `json:"item_id"`
	StoreID       string           `json:"store_id"`
	ItemName      string           `json:"item_name"`
	Unit          string           `json:"unit"`
	CategoryName  string           `json:"category_name,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Value         decimal.Decimal  `json:"value"`
	IsLowStock    bool             `json:"is_low_stock"`
	IsOverStock   bool             `json:"is_over_stock"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
	MaxStockLevel *decimal.Decimal `json:"max_stock_level,omitempty"`
}

// AlertDTO una fila de GET /api/inventory/alerts.
type AlertDTO struct {
	ItemID          string           `json:"item_id"`
	StoreID         string           `json:"store_id"`
	ItemName        string           `json:"item_name"`
	Unit            string           `json:"unit"`
	AlertType       string           `json:"alert_type"`
	Severity        string           `json:"severity"`
	CurrentQuantity decimal.Decimal  `json:"current_quantity"`
	MinStockLevel   *decimal.Decimal `json:"min_stock_level,omitempty"`
	MaxStockLevel   *decimal.Decimal `json:"max_stock_level,omitempty"`
}
