package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// StockRepository puerto del agregado de stock por (artículo, ubicación).
type StockRepository interface {
	// ApplyDelta aplica la política sobre la fila (itemID, locationID) en una
	// sola operación atómica de upsert:
	//   increment: crea con amount o suma amount
	//   decrement: crea con -amount o resta amount (puede quedar negativo)
	//   set:       crea con amount o sobrescribe con amount
	// Referencia inexistente -> domain.ErrInvalidReference.
	ApplyDelta(ctx context.Context, itemID, locationID string, policy entity.StockPolicy, amount int64) error

	// Get devuelve la fila de stock; cantidad 0 si nunca fue tocada.
	Get(ctx context.Context, itemID, locationID string) (*entity.StockEntry, error)

	// List devuelve el stock unido con artículo y ubicación, ordenado por
	// ubicación y artículo. q filtra por sku/nombre/código de barras (ILIKE).
	List(ctx context.Context, q string) ([]*entity.StockView, error)
}
