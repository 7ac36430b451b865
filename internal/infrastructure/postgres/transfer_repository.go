package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/RestoStock-api/internal/domain"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo persistencia de traslados (cabecera + líneas) sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, account_id, from_store_id, to_store_id, status, COALESCE(notes, ''),
	COALESCE(created_by, ''), created_at, COALESCE(completed_by, ''), completed_at`

// Create persiste la cabecera y sus líneas (congeladas desde la creación).
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, account_id, from_store_id, to_store_id, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.AccountID, t.FromStoreID, t.ToStoreID, t.Status,
		nullable(t.Notes), nullable(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	for i := range t.Items {
		line := &t.Items[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.TransferID = t.ID
		_, err := r.q.Exec(ctx,
			`INSERT INTO transfer_items (id, transfer_id, item_id, quantity) VALUES ($1, $2, $3, $4)`,
			line.ID, line.TransferID, line.ItemID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado con sus líneas (nil si no existe).
func (r *TransferRepo) GetByID(ctx context.Context, accountID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE account_id = $1 AND id = $2`
	return r.getOne(ctx, query, accountID, id)
}

// GetForUpdate obtiene el traslado bloqueando la cabecera (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(ctx context.Context, accountID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE account_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(ctx, query, accountID, id)
}

func (r *TransferRepo) getOne(ctx context.Context, query, accountID, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadItems(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus persiste el estado y los campos de completado.
func (r *TransferRepo) UpdateStatus(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $1, completed_by = $2, completed_at = $3
		WHERE account_id = $4 AND id = $5`
	tag, err := r.q.Exec(ctx, query, t.Status, nullable(t.CompletedBy), t.CompletedAt, t.AccountID, t.ID)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el traslado y sus líneas (solo lo invoca el caso de uso
// cuando el traslado sigue PENDING).
func (r *TransferRepo) Delete(ctx context.Context, accountID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transfer_items WHERE transfer_id = $1`, id); err != nil {
		return fmt.Errorf("delete transfer items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM transfers WHERE account_id = $1 AND id = $2`, accountID, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByAccount lista traslados de la cuenta; storeID filtra por origen o destino.
func (r *TransferRepo) ListByAccount(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE account_id = $1`
	args := []any{accountID}
	pos := 2
	if storeID != "" {
		query += fmt.Sprintf(" AND (from_store_id = $%d OR to_store_id = $%d)", pos, pos)
		args = append(args, storeID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadItems(ctx, t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransferRepo) loadItems(ctx context.Context, t *entity.Transfer) error {
	rows, err := r.q.Query(ctx,
		`SELECT id, transfer_id, item_id, quantity FROM transfer_items WHERE transfer_id = $1 ORDER BY item_id`,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.TransferItem
		if err := rows.Scan(&line.ID, &line.TransferID, &line.ItemID, &line.Quantity); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, line)
	}
	return rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var completedAt *time.Time
	err := row.Scan(
		&t.ID, &t.AccountID, &t.FromStoreID, &t.ToStoreID, &t.Status, &t.Notes,
		&t.CreatedBy, &t.CreatedAt, &t.CompletedBy, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CompletedAt = completedAt
	return &t, nil
}
