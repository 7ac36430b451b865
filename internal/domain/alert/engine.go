// Package alert deriva señales de stock bajo/alto a partir de los agregados
// del libro y los umbrales por item. Es un servicio de dominio puro: sin
// estado persistido, se recalcula en cada consulta.
package alert

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// Tipos de alerta.
const (
	TypeLowStock  = "LOW_STOCK"
	TypeOverStock = "OVER_STOCK"
)

// Severidades. critical cuando la cantidad cae por debajo del 25% del mínimo.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// criticalRatio: fracción del umbral mínimo bajo la cual la alerta es crítica.
var criticalRatio = decimal.NewFromFloat(0.25)

// Alert es una señal derivada para un par (item, sede).
type Alert struct {
	ItemID          string
	StoreID         string
	ItemName        string
	Unit            string
	AlertType       string
	Severity        string
	CurrentQuantity decimal.Decimal
	MinStockLevel   *decimal.Decimal
	MaxStockLevel   *decimal.Decimal
}

// Evaluate recorre los agregados y produce las alertas vigentes.
// Orden estable: critical antes que warning y, dentro de cada severidad,
// alfabético por nombre de item (determinismo para UI y tests).
func Evaluate(aggregates []entity.StockAggregate) []Alert {
	alerts := make([]Alert, 0)
	for i := range aggregates {
		agg := &aggregates[i]
		if agg.IsLowStock() {
			severity := SeverityWarning
			if agg.Quantity.LessThan(agg.MinStockLevel.Mul(criticalRatio)) {
				severity = SeverityCritical
			}
			alerts = append(alerts, Alert{
				ItemID:          agg.ItemID,
				StoreID:         agg.StoreID,
				ItemName:        agg.ItemName,
				Unit:            agg.Unit,
				AlertType:       TypeLowStock,
				Severity:        severity,
				CurrentQuantity: agg.Quantity,
				MinStockLevel:   agg.MinStockLevel,
				MaxStockLevel:   agg.MaxStockLevel,
			})
		}
		if agg.IsOverStock() {
			alerts = append(alerts, Alert{
				ItemID:          agg.ItemID,
				StoreID:         agg.StoreID,
				ItemName:        agg.ItemName,
				Unit:            agg.Unit,
				AlertType:       TypeOverStock,
				Severity:        SeverityWarning,
				CurrentQuantity: agg.Quantity,
				MinStockLevel:   agg.MinStockLevel,
				MaxStockLevel:   agg.MaxStockLevel,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == SeverityCritical
		}
		return alerts[i].ItemName < alerts[j].ItemName
	})
	return alerts
}
