package ledger

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// StockQueryUseCase lecturas del agregado de stock (fuera de transacción).
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo}
}

// List devuelve el stock unido con artículo y ubicación; q filtra por
// sku/nombre/código de barras.
func (uc *StockQueryUseCase) List(ctx context.Context, q string) ([]*dto.StockRowResponse, error) {
	rows, err := uc.stockRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToStockRowResponse(r))
	}
	return out, nil
}
