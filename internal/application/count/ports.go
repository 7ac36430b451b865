package count

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La aprobación de un conteo (líneas conciliadas
// + ajustes + estado + notificación) debe ser una unidad atómica.
type TxRunner interface {
	RunCount(ctx context.Context, fn func(
		countRepo repository.StockCountRepository,
		movementRepo repository.MovementRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}

// ReportLine una fila del reporte de discrepancias de un conteo aprobado.
type ReportLine struct {
	ItemName    string
	Unit        string
	Counted     decimal.Decimal
	Expected    decimal.Decimal
	Discrepancy decimal.Decimal
	UnitCost    decimal.Decimal
	Value       decimal.Decimal // Discrepancy x UnitCost
}

// ReportGenerator genera la representación PDF del reporte de un conteo.
type ReportGenerator interface {
	GenerateCountReport(ctx context.Context, count *entity.StockCount, store *entity.Store, lines []ReportLine) ([]byte, error)
}
