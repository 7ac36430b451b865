package count_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// fakeReportGenerator captura las líneas que recibiría el render PDF.
type fakeReportGenerator struct {
	count *entity.StockCount
	store *entity.Store
	lines []count.ReportLine
}

func (f *fakeReportGenerator) GenerateCountReport(_ context.Context, c *entity.StockCount, s *entity.Store, lines []count.ReportLine) ([]byte, error) {
	f.count = c
	f.store = s
	f.lines = lines
	return []byte("%PDF-fake"), nil
}

func TestReportGenerate_SoloConteosAprobados(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	items := &fakeItemRepo{items: map[string]*entity.Item{
		itemTomate: {ID: itemTomate, AccountID: testAccount, Name: "Tomate", Unit: "kg",
			CostPrice: decimal.NewFromFloat(2)},
	}}
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		testStore: {ID: testStore, AccountID: testAccount, Name: "Sede Centro"},
	}}
	gen := &fakeReportGenerator{}
	report := count.NewReportUseCase(f.counts, items, stores, gen)

	// Un conteo completed (aún no aprobado) no tiene conciliación que reportar.
	c := completedCount(t, f, entryReq(itemTomate, 45))
	_, err := report.Generate(ctx, testAccount, c.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = report.Generate(ctx, testAccount, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportGenerate_LineasConciliadas(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	items := &fakeItemRepo{items: map[string]*entity.Item{
		itemTomate: {ID: itemTomate, AccountID: testAccount, Name: "Tomate", Unit: "kg",
			CostPrice: decimal.NewFromFloat(2)},
	}}
	stores := &fakeStoreRepo{stores: map[string]*entity.Store{
		testStore: {ID: testStore, AccountID: testAccount, Name: "Sede Centro"},
	}}
	gen := &fakeReportGenerator{}
	report := count.NewReportUseCase(f.counts, items, stores, gen)

	f.seedLedger(itemTomate, 50, time.Now().Add(-time.Hour))
	c := completedCount(t, f, entryReq(itemTomate, 45))
	_, err := f.uc.Approve(ctx, testAccount, testManager, c.ID, dto.ApproveCountRequest{})
	require.NoError(t, err)

	pdf, err := report.Generate(ctx, testAccount, c.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.Len(t, gen.lines, 1)
	line := gen.lines[0]
	assert.Equal(t, "Tomate", line.ItemName)
	assert.True(t, line.Counted.Equal(decimal.NewFromInt(45)))
	assert.True(t, line.Expected.Equal(decimal.NewFromInt(50)))
	assert.True(t, line.Discrepancy.Equal(decimal.NewFromInt(-5)))
	assert.True(t, line.Value.Equal(decimal.NewFromInt(-10)), "valor = discrepancia x costo unitario")
	assert.Equal(t, "Sede Centro", gen.store.Name)
}
