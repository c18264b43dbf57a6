package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ItemUseCase CRUD del catálogo de artículos. El ledger referencia artículos
// por ID y nunca los muta; este caso de uso es el único camino de escritura.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create valida y persiste un artículo nuevo. SKU duplicado -> ErrDuplicate.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Unit:      unit,
		Barcode:   in.Barcode,
		MinStock:  in.MinStock,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// List devuelve todos los artículos, recientes primero.
func (uc *ItemUseCase) List(ctx context.Context) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ToItemResponse(i))
	}
	return out, nil
}

// Update reemplaza los campos editables del artículo.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if id == "" || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.SKU = in.SKU
	item.Name = in.Name
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	item.Barcode = in.Barcode
	item.MinStock = in.MinStock
	item.ImageURL = in.ImageURL
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// Delete elimina el artículo. Si está referenciado por líneas de documento o
// stock, la FK lo impide y se reporta como ErrConflict.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(ctx, id)
}
