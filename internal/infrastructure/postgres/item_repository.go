package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura de items sobre PostgreSQL. El CRUD de items lo administra
// otro módulo; aquí solo se consulta para validar tenencia y valorar stock.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `i.id, i.account_id, i.name, i.unit, COALESCE(i.category_id::text, ''),
	COALESCE(c.name, ''), i.cost_price, i.min_stock_level, i.max_stock_level, i.created_at, i.updated_at`

// GetByID obtiene un item por ID (nil si no existe).
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.AccountID, &it.Name, &it.Unit, &it.CategoryID, &it.CategoryName,
		&it.CostPrice, &it.MinStockLevel, &it.MaxStockLevel, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListByAccount lista los items de la cuenta (paginado, ordenado por nombre).
func (r *ItemRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items i LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.account_id = $1
		ORDER BY i.name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.AccountID, &it.Name, &it.Unit, &it.CategoryID, &it.CategoryName,
			&it.CostPrice, &it.MinStockLevel, &it.MaxStockLevel, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
