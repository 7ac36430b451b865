package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo persistencia de conteos físicos y sus líneas sobre PostgreSQL.
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

const countColumns = `id, account_id, store_id, user_id, COALESCE(name, ''), status, items_counted,
	total_value, expected_value, discrepancy_value, COALESCE(notes, ''),
	COALESCE(approved_by, ''), approved_at, created_at, completed_at`

// Create persiste un conteo nuevo.
func (r *StockCountRepo) Create(ctx context.Context, count *entity.StockCount) error {
	if count.ID == "" {
		count.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_counts (id, account_id, store_id, user_id, name, status, items_counted,
			total_value, expected_value, discrepancy_value, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		count.ID, count.AccountID, count.StoreID, count.UserID, nullable(count.Name),
		count.Status, count.ItemsCounted, count.TotalValue, count.ExpectedValue,
		count.DiscrepancyValue, nullable(count.Notes), count.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock count: %w", err)
	}
	return nil
}

// GetByID obtiene un conteo de la cuenta (nil si no existe).
func (r *StockCountRepo) GetByID(ctx context.Context, accountID, id string) (*entity.StockCount, error) {
	query := `SELECT ` + countColumns + ` FROM stock_counts WHERE account_id = $1 AND id = $2`
	return r.scanCountRow(r.q.QueryRow(ctx, query, accountID, id))
}

// GetForUpdate obtiene el conteo bloqueando la fila (SELECT FOR UPDATE).
// Serializa Complete/Approve concurrentes sobre el mismo conteo.
func (r *StockCountRepo) GetForUpdate(ctx context.Context, accountID, id string) (*entity.StockCount, error) {
	query := `SELECT ` + countColumns + ` FROM stock_counts WHERE account_id = $1 AND id = $2 FOR UPDATE`
	return r.scanCountRow(r.q.QueryRow(ctx, query, accountID, id))
}

// Update persiste estado, totales, notas y campos de aprobación.
func (r *StockCountRepo) Update(ctx context.Context, count *entity.StockCount) error {
	query := `
		UPDATE stock_counts
		SET status = $1, items_counted = $2, total_value = $3, expected_value = $4,
		    discrepancy_value = $5, notes = $6, approved_by = $7, approved_at = $8, completed_at = $9
		WHERE account_id = $10 AND id = $11`
	tag, err := r.q.Exec(ctx, query,
		count.Status, count.ItemsCounted, count.TotalValue, count.ExpectedValue,
		count.DiscrepancyValue, nullable(count.Notes), nullable(count.ApprovedBy),
		count.ApprovedAt, count.CompletedAt, count.AccountID, count.ID,
	)
	if err != nil {
		return fmt.Errorf("update stock count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByAccount lista conteos de la cuenta, opcionalmente por sede.
func (r *StockCountRepo) ListByAccount(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.StockCount, error) {
	query := `SELECT ` + countColumns + ` FROM stock_counts WHERE account_id = $1`
	args := []any{accountID}
	pos := 2
	if storeID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, storeID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock counts: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockCount
	for rows.Next() {
		c, err := scanCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CreateEntry persiste una línea. El índice único (count_id, item_id) traduce
// un item repetido en el mismo conteo a ErrConflict.
func (r *StockCountRepo) CreateEntry(ctx context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_entries (id, count_id, item_id, quantity, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.CountID, entry.ItemID, entry.Quantity, entry.UnitCost, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

// GetEntryByID obtiene una línea del conteo (nil si no existe).
func (r *StockCountRepo) GetEntryByID(ctx context.Context, countID, entryID string) (*entity.StockEntry, error) {
	query := `
		SELECT id, count_id, item_id, quantity, unit_cost, expected_quantity, discrepancy, created_at, updated_at
		FROM stock_entries WHERE count_id = $1 AND id = $2`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, countID, entryID).Scan(
		&e.ID, &e.CountID, &e.ItemID, &e.Quantity, &e.UnitCost,
		&e.ExpectedQuantity, &e.Discrepancy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return &e, nil
}

// UpdateEntryQuantity edita cantidad y costo congelado (solo captura).
func (r *StockCountRepo) UpdateEntryQuantity(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		UPDATE stock_entries SET quantity = $1, unit_cost = $2, updated_at = $3
		WHERE count_id = $4 AND id = $5`
	tag, err := r.q.Exec(ctx, query, entry.Quantity, entry.UnitCost, entry.UpdatedAt, entry.CountID, entry.ID)
	if err != nil {
		return fmt.Errorf("update stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEntry elimina una línea del conteo.
func (r *StockCountRepo) DeleteEntry(ctx context.Context, countID, entryID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_entries WHERE count_id = $1 AND id = $2`, countID, entryID)
	if err != nil {
		return fmt.Errorf("delete stock entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListEntries lista las líneas del conteo en orden de captura.
func (r *StockCountRepo) ListEntries(ctx context.Context, countID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, count_id, item_id, quantity, unit_cost, expected_quantity, discrepancy, created_at, updated_at
		FROM stock_entries WHERE count_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, countID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(
			&e.ID, &e.CountID, &e.ItemID, &e.Quantity, &e.UnitCost,
			&e.ExpectedQuantity, &e.Discrepancy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SetEntryReconciliation escribe expected_quantity y discrepancy una sola vez
// (el WHERE exige que sigan NULL: una línea ya conciliada no se reescribe).
func (r *StockCountRepo) SetEntryReconciliation(ctx context.Context, entryID string, expected, discrepancy decimal.Decimal) error {
	query := `
		UPDATE stock_entries SET expected_quantity = $1, discrepancy = $2, updated_at = now()
		WHERE id = $3 AND expected_quantity IS NULL AND discrepancy IS NULL`
	tag, err := r.q.Exec(ctx, query, expected, discrepancy, entryID)
	if err != nil {
		return fmt.Errorf("set entry reconciliation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *StockCountRepo) scanCountRow(row pgx.Row) (*entity.StockCount, error) {
	c, err := scanCount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock count: %w", err)
	}
	return c, nil
}

func scanCount(row pgx.Row) (*entity.StockCount, error) {
	var c entity.StockCount
	var approvedAt, completedAt *time.Time
	err := row.Scan(
		&c.ID, &c.AccountID, &c.StoreID, &c.UserID, &c.Name, &c.Status, &c.ItemsCounted,
		&c.TotalValue, &c.ExpectedValue, &c.DiscrepancyValue, &c.Notes,
		&c.ApprovedBy, &approvedAt, &c.CreatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ApprovedAt = approvedAt
	c.CompletedAt = completedAt
	return &c, nil
}
