package count

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// discrepancyEpsilon: por debajo de este umbral una diferencia se considera
// ruido de punto flotante y no genera ajuste.
var discrepancyEpsilon = decimal.NewFromFloat(0.001)

// Approve concilia un conteo completed contra el libro y lo marca approved.
// Para cada línea calcula expected = agregado del libro para (item, sede) al
// corte, persiste expected/discrepancy (write-once) y, si |discrepancy| supera
// el épsilon, emite un ADJUSTMENT firmado que referencia al conteo. Todo corre
// en una transacción: líneas + ajustes + estado + notificación, o nada. Una
// falla deja el conteo en completed y la aprobación puede reintentarse.
//
// El corte por defecto es el momento de la aprobación; con PinToCompletion (o
// la configuración equivalente) se fija en completed_at, cerrando la ventana en
// que movimientos posteriores al conteo desplazan la discrepancia.
func (uc *CountUseCase) Approve(ctx context.Context, accountID, userID, countID string, in dto.ApproveCountRequest) (*dto.ApproveCountResult, error) {
	pin := uc.pinExpectedToCompletion
	if in.PinToCompletion != nil {
		pin = *in.PinToCompletion
	}

	result := &dto.ApproveCountResult{}
	err := uc.txRunner.RunCount(ctx, func(
		countRepo repository.StockCountRepository,
		movementRepo repository.MovementRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		// Bloqueo de fila: el segundo aprobador concurrente ve approved y falla
		// con ErrInvalidState en lugar de duplicar ajustes.
		count, err := uc.requireCountForUpdate(ctx, countRepo, accountID, countID, entity.CountStatusCompleted)
		if err != nil {
			return err
		}

		var asOf *time.Time
		if pin && count.CompletedAt != nil {
			asOf = count.CompletedAt
		}

		entries, err := countRepo.ListEntries(ctx, countID)
		if err != nil {
			return err
		}

		now := time.Now()
		expectedValue := decimal.Zero
		actualValue := decimal.Zero
		discrepancyValue := decimal.Zero
		shortages, surpluses := 0, 0

		for _, entry := range entries {
			expected, err := movementRepo.SumQuantity(ctx, accountID, entry.ItemID, count.StoreID, asOf)
			if err != nil {
				return err
			}
			discrepancy := entry.Quantity.Sub(expected)
			if err := countRepo.SetEntryReconciliation(ctx, entry.ID, expected, discrepancy); err != nil {
				return err
			}

			cost, err := uc.entryCost(ctx, entry)
			if err != nil {
				return err
			}
			expectedValue = expectedValue.Add(expected.Mul(cost))
			actualValue = actualValue.Add(entry.Quantity.Mul(cost))
			discrepancyValue = discrepancyValue.Add(discrepancy.Mul(cost))

			if discrepancy.Abs().LessThanOrEqual(discrepancyEpsilon) {
				continue
			}
			reason := entity.AdjustmentReasonSurplus
			if discrepancy.IsNegative() {
				reason = entity.AdjustmentReasonShortage
				shortages++
			} else {
				surpluses++
			}
			adjustment := &entity.Movement{
				AccountID:     accountID,
				ItemID:        entry.ItemID,
				StoreID:       count.StoreID,
				Quantity:      discrepancy,
				Type:          entity.MovementTypeADJUSTMENT,
				Reason:        reason,
				Notes:         in.AdjustmentNotes,
				ReferenceID:   count.ID,
				ReferenceType: entity.ReferenceTypeCount,
				CostPrice:     cost,
				CreatedBy:     userID,
				CreatedAt:     now,
			}
			if err := movementRepo.Create(ctx, adjustment); err != nil {
				return err
			}
		}

		count.Status = entity.CountStatusApproved
		count.ApprovedBy = userID
		count.ApprovedAt = &now
		count.ExpectedValue = expectedValue
		count.DiscrepancyValue = discrepancyValue
		if err := countRepo.Update(ctx, count); err != nil {
			return err
		}

		if shortages+surpluses > 0 {
			notification := &entity.Notification{
				AccountID:             accountID,
				Type:                  entity.NotificationTypeDISCREPANCY,
				CountID:               count.ID,
				Shortages:             shortages,
				Surpluses:             surpluses,
				TotalDiscrepancyValue: discrepancyValue,
				CreatedAt:             now,
			}
			if err := notificationRepo.Create(ctx, notification); err != nil {
				return err
			}
		}

		result.Count = countToResponse(count)
		result.Adjustments = shortages + surpluses
		result.Shortages = shortages
		result.Surpluses = surpluses
		result.TotalDiscrepancyValue = discrepancyValue
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("account_id", accountID).
		Str("count_id", countID).
		Int("shortages", result.Shortages).
		Int("surpluses", result.Surpluses).
		Str("discrepancy_value", result.TotalDiscrepancyValue.String()).
		Msg("conteo aprobado")
	return result, nil
}

// countToResponse mapea la entidad al DTO (sin líneas).
func countToResponse(c *entity.StockCount) dto.CountResponse {
	return dto.CountResponse{
		ID:               c.ID,
		StoreID:          c.StoreID,
		UserID:           c.UserID,
		Name:             c.Name,
		Status:           c.Status,
		ItemsCounted:     c.ItemsCounted,
		TotalValue:       c.TotalValue,
		ExpectedValue:    c.ExpectedValue,
		DiscrepancyValue: c.DiscrepancyValue,
		Notes:            c.Notes,
		ApprovedBy:       c.ApprovedBy,
		ApprovedAt:       c.ApprovedAt,
		CreatedAt:        c.CreatedAt,
		CompletedAt:      c.CompletedAt,
	}
}
