package count_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCountRepo struct {
	counts  map[string]*entity.StockCount
	entries map[string]*entity.StockEntry
	seq     int
}

func newFakeCountRepo() *fakeCountRepo {
	return &fakeCountRepo{
		counts:  map[string]*entity.StockCount{},
		entries: map[string]*entity.StockEntry{},
	}
}

func (f *fakeCountRepo) Create(_ context.Context, c *entity.StockCount) error {
	f.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("count-%d", f.seq)
	}
	f.counts[c.ID] = c
	return nil
}

func (f *fakeCountRepo) GetByID(_ context.Context, accountID, id string) (*entity.StockCount, error) {
	c, ok := f.counts[id]
	if !ok || c.AccountID != accountID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCountRepo) GetForUpdate(ctx context.Context, accountID, id string) (*entity.StockCount, error) {
	return f.GetByID(ctx, accountID, id)
}

func (f *fakeCountRepo) Update(_ context.Context, c *entity.StockCount) error {
	if _, ok := f.counts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.counts[c.ID] = c
	return nil
}

func (f *fakeCountRepo) ListByAccount(_ context.Context, accountID, storeID string, _, _ int) ([]*entity.StockCount, error) {
	out := make([]*entity.StockCount, 0)
	for _, c := range f.counts {
		if c.AccountID != accountID {
			continue
		}
		if storeID != "" && c.StoreID != storeID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCountRepo) CreateEntry(_ context.Context, e *entity.StockEntry) error {
	for _, existing := range f.entries {
		if existing.CountID == e.CountID && existing.ItemID == e.ItemID {
			return domain.ErrConflict
		}
	}
	f.seq++
	if e.ID == "" {
		e.ID = fmt.Sprintf("entry-%d", f.seq)
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeCountRepo) GetEntryByID(_ context.Context, countID, entryID string) (*entity.StockEntry, error) {
	e, ok := f.entries[entryID]
	if !ok || e.CountID != countID {
		return nil, nil
	}
	return e, nil
}

func (f *fakeCountRepo) UpdateEntryQuantity(_ context.Context, e *entity.StockEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeCountRepo) DeleteEntry(_ context.Context, _, entryID string) error {
	delete(f.entries, entryID)
	return nil
}

func (f *fakeCountRepo) ListEntries(_ context.Context, countID string) ([]*entity.StockEntry, error) {
	out := make([]*entity.StockEntry, 0)
	// Orden de inserción estable para que los tests sean deterministas.
	for i := 1; i <= f.seq; i++ {
		if e, ok := f.entries[fmt.Sprintf("entry-%d", i)]; ok && e.CountID == countID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCountRepo) SetEntryReconciliation(_ context.Context, entryID string, expected, discrepancy decimal.Decimal) error {
	e, ok := f.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.ExpectedQuantity != nil || e.Discrepancy != nil {
		// write-once: la conciliación nunca se reescribe
		return domain.ErrConflict
	}
	e.ExpectedQuantity = &expected
	e.Discrepancy = &discrepancy
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
	seq       int
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.seq++
	if m.ID == "" {
		m.ID = fmt.Sprintf("mov-%d", f.seq)
	}
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, _, _ string) (*entity.Movement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) SumQuantity(_ context.Context, accountID, itemID, storeID string, asOf *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.movements {
		if m.AccountID != accountID || m.ItemID != itemID {
			continue
		}
		if storeID != "" && m.StoreID != storeID {
			continue
		}
		if asOf != nil && !m.CreatedAt.Before(*asOf) {
			continue
		}
		sum = sum.Add(m.Quantity)
	}
	return sum, nil
}

func (f *fakeMovementRepo) AggregateAll(_ context.Context, _, _ string) ([]entity.StockAggregate, error) {
	return nil, nil
}

func (f *fakeMovementRepo) List(_ context.Context, _ string, _ repository.MovementFilter) ([]*entity.Movement, error) {
	return f.movements, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return f.items[id], nil
}

func (f *fakeItemRepo) ListByAccount(_ context.Context, _ string, _, _ int) ([]*entity.Item, error) {
	return nil, nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) ListByAccount(_ context.Context, _ string, _, _ int) ([]*entity.Store, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListByAccount(_ context.Context, _ string, _, _ int) ([]*entity.Notification, error) {
	return f.notifications, nil
}

type fakeTxRunner struct {
	countRepo        repository.StockCountRepository
	movementRepo     repository.MovementRepository
	notificationRepo repository.NotificationRepository
}

func (f *fakeTxRunner) RunCount(ctx context.Context, fn func(
	repository.StockCountRepository,
	repository.MovementRepository,
	repository.NotificationRepository,
) error) error {
	return fn(f.countRepo, f.movementRepo, f.notificationRepo)
}

const (
	testAccount = "acc-1"
	testUser    = "user-1"
	testManager = "user-manager"
	testStore   = "store-centro"
	itemTomate  = "item-tomate"
	itemHarina  = "item-harina"
)

type fixture struct {
	uc            *count.CountUseCase
	counts        *fakeCountRepo
	movements     *fakeMovementRepo
	notifications *fakeNotificationRepo
}

func newFixture(pin bool) *fixture {
	counts := newFakeCountRepo()
	movements := &fakeMovementRepo{}
	notifications := &fakeNotificationRepo{}
	items := &fakeItemRepo{items: map[string]*entity.Item{
		itemTomate: {ID: itemTomate, AccountID: testAccount, Name: "Tomate", Unit: "kg",
			CostPrice: decimal.NewFromFloat(2)},
		itemHarina: {ID: itemHarina, AccountID: testAccount, Name: "Harina", Unit: "kg",
			CostPrice: decimal.NewFromFloat(3)},
	}}
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		testStore: {ID: testStore, AccountID: testAccount, Name: "Sede Centro"},
	}}
	runner := &fakeTxRunner{countRepo: counts, movementRepo: movements, notificationRepo: notifications}
	return &fixture{
		uc:            count.NewCountUseCase(runner, counts, movements, items, stores, pin),
		counts:        counts,
		movements:     movements,
		notifications: notifications,
	}
}

// seedLedger registra stock inicial en el libro para un item.
func (f *fixture) seedLedger(itemID string, qty float64, at time.Time) {
	f.movements.movements = append(f.movements.movements, &entity.Movement{
		ID:        fmt.Sprintf("seed-%s-%d", itemID, len(f.movements.movements)),
		AccountID: testAccount,
		ItemID:    itemID,
		StoreID:   testStore,
		Quantity:  decimal.NewFromFloat(qty),
		Type:      entity.MovementTypePURCHASE,
		CreatedAt: at,
	})
}

func entryReq(itemID string, qty float64) dto.CountEntryRequest {
	return dto.CountEntryRequest{ItemID: itemID, Quantity: decimal.NewFromFloat(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Captura: inicio, líneas y cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_NaceInProgress(t *testing.T) {
	f := newFixture(false)
	c, err := f.uc.Start(context.Background(), testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)
	assert.Equal(t, entity.CountStatusInProgress, c.Status)
	assert.Zero(t, c.ItemsCounted)
}

func TestStart_SedeAjena_NotFound(t *testing.T) {
	f := newFixture(false)
	_, err := f.uc.Start(context.Background(), "acc-ajena", testUser, dto.StartCountRequest{StoreID: testStore})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddEntry_CongelaCostoEIncrementaContador(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)

	entry, err := f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 12))
	require.NoError(t, err)
	require.NotNil(t, entry.UnitCost)
	assert.True(t, entry.UnitCost.Equal(decimal.NewFromFloat(2)),
		"sin costo explícito se congela el costo vigente del item")

	kept, _, err := f.uc.GetByID(ctx, testAccount, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.ItemsCounted)
}

func TestAddEntry_ItemRepetido_Conflict(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)

	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 12))
	require.NoError(t, err)
	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 13))
	assert.ErrorIs(t, err, domain.ErrConflict, "un item solo puede contarse una vez por sesión")
}

func TestAddEntry_CantidadNegativa_EntradaInvalida(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)

	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_CalculaTotalValueYCongela(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)
	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 10)) // 10 x 2 = 20
	require.NoError(t, err)
	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemHarina, 4)) // 4 x 3 = 12
	require.NoError(t, err)

	done, err := f.uc.Complete(ctx, testAccount, c.ID, dto.CompleteCountRequest{Notes: "fin de mes"})
	require.NoError(t, err)
	assert.Equal(t, entity.CountStatusCompleted, done.Status)
	assert.True(t, done.TotalValue.Equal(decimal.NewFromInt(32)), "total esperado 32, obtenido %s", done.TotalValue)
	assert.Equal(t, "fin de mes", done.Notes)
	require.NotNil(t, done.CompletedAt)

	// Después del cierre las líneas quedan congeladas.
	_, err = f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	entries, err := f.counts.ListEntries(ctx, c.ID)
	require.NoError(t, err)
	_, err = f.uc.UpdateEntry(ctx, testAccount, c.ID, entries[0].ID, entryReq(itemTomate, 99))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	err = f.uc.DeleteEntry(ctx, testAccount, c.ID, entries[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteEntry_DecrementaContador(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	c, err := f.uc.Start(ctx, testAccount, testUser, dto.StartCountRequest{StoreID: testStore})
	require.NoError(t, err)
	entry, err := f.uc.AddEntry(ctx, testAccount, c.ID, entryReq(itemTomate, 10))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteEntry(ctx, testAccount, c.ID, entry.ID))
	kept, _, err := f.uc.GetByID(ctx, testAccount, c.ID)
	require.NoError(t, err)
	assert.Zero(t, kept.ItemsCounted)
}
