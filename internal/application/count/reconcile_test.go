package count_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// completedCount deja un conteo en completed con las líneas indicadas.
func completedCount(t *testing.T, f *fixture, entries ...dto.CountEntryRequest) *entity.StockCount {
	t.Helper()
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)
	for _, e := range entries {
		_, err = f.uc.AddEntry(ctx, testAccount, c.ID, e)
		require.NoError(t, err)
	}
	done, err := f.uc.Complete(ctx, testAccount, c.ID, dto.CompleteCountRequest{})
	require.NoError(t, err)
	return done
}

// adjustments filtra los movimientos emitidos por la conciliación.
func adjustments(f *fixture) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for _, m := range f.movements.movements {
		if m.Type == entity.MovementTypeADJUSTMENT {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve — conciliación contra el libro
// ──────────────────────────────────────────────────────────────────────────────

// El libro dice 50, el contador encontró 45: falta de 5 -> ADJUSTMENT de -5
// que referencia al conteo, y el agregado posterior coincide con lo contado.
func TestApprove_FaltanteEmiteAjusteNegativo(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.seedLedger(itemTomate, 50, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 45))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Adjustments)
	assert.Equal(t, 1, result.Shortages)
	assert.Zero(t, result.Surpluses)
	assert.Equal(t, entity.CountStatusApproved, result.Count.Status)
	assert.Equal(t, testManager, result.Count.ApprovedBy)

	adjs := adjustments(f)
	require.Len(t, adjs, 1)
	adj := adjs[0]
	assert.True(t, adj.Quantity.Equal(decimal.NewFromInt(-5)))
	assert.Equal(t, entity.AdjustmentReasonShortage, adj.Reason)
	assert.Equal(t, entity.ReferenceTypeCount, adj.ReferenceType)
	assert.Equal(t, c.ID, adj.ReferenceID)
	assert.Equal(t, testManager, adj.CreatedBy)

	// Tras el ajuste el libro coincide con lo contado.
	sum, err := f.movements.SumQuantity(ctx, testAccount, itemTomate, testStore, nil)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(45)))

	// La línea quedó conciliada (write-once).
	entries, err := f.counts.ListEntries(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, entries[0].ExpectedQuantity)
	require.NotNil(t, entries[0].Discrepancy)
	assert.True(t, entries[0].ExpectedQuantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, entries[0].Discrepancy.Equal(decimal.NewFromInt(-5)))

	// valor de discrepancia: -5 x costo 2 = -10
	assert.True(t, result.TotalDiscrepancyValue.Equal(decimal.NewFromInt(-10)))
}

func TestApprove_SobranteEmiteAjustePositivo(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.seedLedger(itemHarina, 10, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemHarina, 13))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Surpluses)
	assert.Zero(t, result.Shortages)

	adjs := adjustments(f)
	require.Len(t, adjs, 1)
	assert.True(t, adjs[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, entity.AdjustmentReasonSurplus, adjs[0].Reason)
}

// Una diferencia dentro del épsilon (0.001) es ruido: la línea se concilia
// pero no se emite ajuste.
func TestApprove_DiscrepanciaBajoEpsilon_SinAjuste(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.seedLedger(itemTomate, 10.0005, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 10))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.Adjustments)
	assert.Empty(t, adjustments(f))
	assert.Empty(t, f.notifications.notifications, "sin ajustes no hay notificación")

	entries, err := f.counts.ListEntries(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, entries[0].Discrepancy, "la línea se concilia aunque no haya ajuste")
}

// En el borde exacto del umbral (0.001) no hay ajuste; apenas por encima sí.
func TestApprove_EpsilonEnElBorde(t *testing.T) {
	ctx := context.Background()

	f := newFixture(false)
	f.seedLedger(itemTomate, 10.001, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 10))
	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.Adjustments, "|discrepancia| == 0.001 sigue siendo ruido")

	f = newFixture(false)
	f.seedLedger(itemTomate, 10.0011, time.Now().Add(-time.Hour))
	c = completedCount(t, f, entryReq(itemTomate, 10))
	result, err = f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Adjustments, "|discrepancia| > 0.001 genera ajuste")
	require.Len(t, adjustments(f), 1)
	assert.Equal(t, entity.AdjustmentReasonShortage, adjustments(f)[0].Reason)
}

// Conteo exacto: cero ajustes, cero notificaciones, discrepancia cero.
func TestApprove_ConteoExacto(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.seedLedger(itemTomate, 45, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 45))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.Adjustments)
	assert.True(t, result.TotalDiscrepancyValue.IsZero())
	assert.Empty(t, adjustments(f))
}

// Doble aprobación: la segunda ve approved bajo el bloqueo y falla con
// ErrInvalidState sin duplicar ajustes ni mover los valores fijados.
func TestApprove_DobleAprobacion_EstadoInvalido(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	f.seedLedger(itemTomate, 50, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 45))

	first, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Len(t, adjustments(f), 1, "la segunda aprobación no debe duplicar ajustes")
	kept, _, err := f.uc.GetByID(ctx, testAccount, c.ID)
	require.NoError(t, err)
	assert.True(t, kept.DiscrepancyValue.Equal(first.Count.DiscrepancyValue),
		"los valores fijados en la primera aprobación no se mueven")
}

// Estado equivocado: un conteo in_progress no se puede aprobar.
func TestApprove_InProgress_EstadoInvalido(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)

	_, err = f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Varias líneas con faltantes y sobrantes: una sola notificación con el resumen.
func TestApprove_EmiteNotificacionDeDiscrepancias(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	f.seedLedger(itemTomate, 50, past) // contado 45 -> faltante
	f.seedLedger(itemHarina, 10, past) // contado 13 -> sobrante
	c := completedCount(t, f, entryReq(itemTomate, 45), entryReq(itemHarina, 13))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Adjustments)
	assert.Equal(t, 1, result.Shortages)
	assert.Equal(t, 1, result.Surpluses)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, entity.NotificationTypeDISCREPANCY, n.Type)
	assert.Equal(t, c.ID, n.CountID)
	assert.Equal(t, 1, n.Shortages)
	assert.Equal(t, 1, n.Surpluses)
	// -5 x 2 + 3 x 3 = -1
	assert.True(t, n.TotalDiscrepancyValue.Equal(decimal.NewFromInt(-1)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Corte del stock esperado (pin a completed_at)
// ──────────────────────────────────────────────────────────────────────────────

// Sin pin, un movimiento registrado entre el cierre y la aprobación desplaza
// el esperado; con pin el corte queda en completed_at y el movimiento tardío
// no contamina la conciliación.
func TestApprove_PinToCompletion_IgnoraMovimientosPosterioresAlCierre(t *testing.T) {
	ctx := context.Background()

	run := func(pin bool) decimal.Decimal {
		f := newFixture(false)
		f.seedLedger(itemTomate, 50, time.Now().Add(-time.Hour))
		c := completedCount(t, f, entryReq(itemTomate, 45))

		// Compra que entra después del cierre del conteo pero antes de aprobar.
		f.seedLedger(itemTomate, 20, time.Now().Add(time.Minute))

		result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{
			PinToCompletion: &pin,
		})
		require.NoError(t, err)
		return result.TotalDiscrepancyValue
	}

	pinned := run(true)
	unpinned := run(false)

	// Con pin: esperado 50, discrepancia -5 x 2 = -10.
	assert.True(t, pinned.Equal(decimal.NewFromInt(-10)))
	// Sin pin: esperado 70, discrepancia -25 x 2 = -50.
	assert.True(t, unpinned.Equal(decimal.NewFromInt(-50)))
}

// El valor de configuración aplica cuando la petición no trae PinToCompletion.
func TestApprove_PinPorConfiguracion(t *testing.T) {
	ctx := context.Background()

	f := newFixture(true) // pin activado por configuración
	f.seedLedger(itemTomate, 50, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 45))
	f.seedLedger(itemTomate, 20, time.Now().Add(time.Minute))

	result, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)
	assert.True(t, result.TotalDiscrepancyValue.Equal(decimal.NewFromInt(-10)),
		"el pin de configuración fija el corte en completed_at")
}
