package transfer

import (
	"context"

	"github.com/jhoicas/RestoStock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la emisión de los movimientos
// TRANSFER_OUT/TRANSFER_IN y el cambio de estado sean todo-o-nada.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
