package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL.
// La tabla movements es insert-only; no existe UPDATE ni DELETE aquí.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, account_id, item_id, store_id, quantity, type, reason, notes,
	reference_id, reference_type, cost_price, created_by, created_at`

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.AccountID, m.ItemID, m.StoreID, m.Quantity, m.Type,
		nullable(m.Reason), nullable(m.Notes), nullable(m.ReferenceID), nullable(m.ReferenceType),
		m.CostPrice, nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento de la cuenta por ID (nil si no existe).
func (r *MovementRepo) GetByID(ctx context.Context, accountID, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE account_id = $1 AND id = $2`
	m, err := scanMovement(r.q.QueryRow(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// SumQuantity suma las cantidades firmadas para (item, sede) con created_at < asOf.
// La suma es independiente del orden de inserción; en SQL COALESCE cubre el
// par sin movimientos (SUM de cero filas es NULL).
func (r *MovementRepo) SumQuantity(ctx context.Context, accountID, itemID, storeID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM movements WHERE account_id = $1 AND item_id = $2`
	args := []any{accountID, itemID}
	pos := 3
	if storeID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, storeID)
		pos++
	}
	if asOf != nil {
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *asOf)
	}

	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum quantity: %w", err)
	}
	return sum, nil
}

// AggregateAll agrega por (item, sede) y une con la metadata del item.
// El valor se calcula al costo vigente del item, no al costo histórico.
func (r *MovementRepo) AggregateAll(ctx context.Context, accountID, storeID string) ([]entity.StockAggregate, error) {
	query := `
		SELECT m.item_id, m.store_id, i.name, i.unit, COALESCE(c.name, ''),
		       SUM(m.quantity) AS quantity,
		       SUM(m.quantity) * i.cost_price AS value,
		       i.cost_price, i.min_stock_level, i.max_stock_level
		FROM movements m
		JOIN items i ON i.id = m.item_id
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE m.account_id = $1`
	args := []any{accountID}
	if storeID != "" {
		query += " AND m.store_id = $2"
		args = append(args, storeID)
	}
	query += `
		GROUP BY m.item_id, m.store_id, i.name, i.unit, c.name, i.cost_price, i.min_stock_level, i.max_stock_level
		ORDER BY i.name, m.store_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate all: %w", err)
	}
	defer rows.Close()

	var list []entity.StockAggregate
	for rows.Next() {
		var agg entity.StockAggregate
		if err := rows.Scan(
			&agg.ItemID, &agg.StoreID, &agg.ItemName, &agg.Unit, &agg.CategoryName,
			&agg.Quantity, &agg.Value, &agg.CostPrice, &agg.MinStockLevel, &agg.MaxStockLevel,
		); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		list = append(list, agg)
	}
	return list, rows.Err()
}

// List lista movimientos de la cuenta con filtros opcionales y paginación.
func (r *MovementRepo) List(ctx context.Context, accountID string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE account_id = $1`
	args := []any{accountID}
	pos := 2
	if filter.StoreID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// scanMovement lee una fila con movementColumns.
func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var reason, notes, referenceID, referenceType, createdBy *string
	err := row.Scan(
		&m.ID, &m.AccountID, &m.ItemID, &m.StoreID, &m.Quantity, &m.Type,
		&reason, &notes, &referenceID, &referenceType, &m.CostPrice, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Reason = deref(reason)
	m.Notes = deref(notes)
	m.ReferenceID = deref(referenceID)
	m.ReferenceType = deref(referenceType)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
