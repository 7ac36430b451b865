package repository

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// ItemRepository puerto de lectura de items (el CRUD vive en otro módulo).
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.Item, error)
}
