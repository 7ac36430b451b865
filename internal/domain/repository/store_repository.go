package repository

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// StoreRepository puerto de lectura de sedes (el CRUD vive en otro módulo).
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Store, error)
}
