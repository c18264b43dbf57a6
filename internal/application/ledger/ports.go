package ledger

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ciclo de vida
// de documentos y para el motor de contabilización: o se aplica todo
// (cabecera, líneas y deltas de stock) o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
	) error) error
}
