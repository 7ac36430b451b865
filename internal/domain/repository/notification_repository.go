package repository

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// NotificationRepository puerto del sumidero de notificaciones. La implementación
// por defecto persiste el evento (outbox); la entrega es de un colaborador externo.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Notification, error)
}
