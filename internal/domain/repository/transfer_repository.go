package repository

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// TransferRepository puerto de persistencia de traslados (cabecera + líneas).
type TransferRepository interface {
	// Create persiste el traslado y sus líneas (las líneas quedan congeladas).
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, accountID, id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar
	// transiciones de estado concurrentes.
	GetForUpdate(ctx context.Context, accountID, id string) (*entity.Transfer, error)
	// UpdateStatus persiste status, completed_by y completed_at.
	UpdateStatus(ctx context.Context, transfer *entity.Transfer) error
	Delete(ctx context.Context, accountID, id string) error
	ListByAccount(ctx context.Context, accountID, storeID string, limit, offset int) ([]*entity.Transfer, error)
}
