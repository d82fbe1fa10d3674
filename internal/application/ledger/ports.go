package ledger

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el incremento del nivel y el
// append del movimiento se observen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		levelRepo repository.StockLevelRepository,
	) error) error
}
