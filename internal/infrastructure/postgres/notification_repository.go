package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo sumidero de notificaciones sobre PostgreSQL (outbox).
// Se inserta dentro de la misma transacción que la aprobación del conteo;
// un proceso externo se encarga de la entrega.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste un evento de notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	query := `
		INSERT INTO notifications (id, account_id, type, count_id, shortages, surpluses, total_discrepancy_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.AccountID, n.Type, n.CountID, n.Shortages, n.Surpluses,
		n.TotalDiscrepancyValue, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListByAccount lista los eventos de la cuenta, más recientes primero.
func (r *NotificationRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, account_id, type, count_id, shortages, surpluses, total_discrepancy_value, created_at
		FROM notifications WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.AccountID, &n.Type, &n.CountID, &n.Shortages, &n.Surpluses,
			&n.TotalDiscrepancyValue, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
